package main

import (
	"context"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"quizarena/config"
	"quizarena/controllers"
	"quizarena/db"
	"quizarena/middlewares"
	"quizarena/routes"
	"quizarena/services"
	"quizarena/store"
	"quizarena/utils"
	"quizarena/websocket"
)

func main() {
	// Optional .env for local development; real deployments use the
	// environment directly.
	godotenv.Load()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := db.Connect(context.Background(), cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Info("Connected to MongoDB")

	duelStore := store.NewDuelStore(database)
	quizStore := store.NewQuizStore(database)
	userStore := store.NewUserStore(database)
	resultStore := store.NewResultStore(database)

	utils.SeedSampleData(context.Background(), quizStore, userStore)

	clerkService, err := services.NewClerkService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize identity provider client: %v", err)
	}

	hub := websocket.NewHub()
	ratingService := services.NewRatingService(userStore)
	duelService := services.NewDuelService(duelStore, quizStore, userStore, ratingService, hub)
	quizService := services.NewQuizService(quizStore, resultStore)

	router := routes.Setup(cfg, routes.Controllers{
		Health:      controllers.NewHealthController(database),
		Auth:        controllers.NewAuthController(clerkService, userStore),
		Quiz:        controllers.NewQuizController(quizService),
		Duel:        controllers.NewDuelController(duelService),
		Profile:     controllers.NewProfileController(userStore),
		Leaderboard: controllers.NewLeaderboardController(userStore),
		Socket:      websocket.NewHandler(hub, duelStore),
	}, middlewares.Auth(clerkService))

	port := strconv.Itoa(cfg.Server.Port)
	log.Infof("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
