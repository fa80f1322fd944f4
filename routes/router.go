package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quizarena/config"
	"quizarena/controllers"
	"quizarena/websocket"
)

// Controllers bundles everything the router wires up. All instances are
// constructed in main and injected; nothing here reaches for globals.
type Controllers struct {
	Health      *controllers.HealthController
	Auth        *controllers.AuthController
	Quiz        *controllers.QuizController
	Duel        *controllers.DuelController
	Profile     *controllers.ProfileController
	Leaderboard *controllers.LeaderboardController
	Socket      *websocket.Handler
}

// Setup builds the gin engine with CORS, public auth routes and the
// token-protected API surface.
func Setup(cfg *config.Config, ctrl Controllers, authMiddleware gin.HandlerFunc) *gin.Engine {
	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	router.GET("/", ctrl.Health.Index)
	router.GET("/health", ctrl.Health.Health)

	// Account management goes through the identity provider; no session
	// is needed yet.
	router.POST("/auth/register", ctrl.Auth.Register)
	router.POST("/auth/login", ctrl.Auth.Login)
	router.POST("/auth/logout", ctrl.Auth.Logout)
	router.GET("/auth/me", ctrl.Auth.Me)

	// Duel rooms are joined over the socket with the duel id; state
	// recovery happens via the authenticated query path.
	router.GET("/ws", ctrl.Socket.Serve)

	auth := router.Group("/")
	auth.Use(authMiddleware)
	{
		auth.GET("/quiz/get-all-quizzes", ctrl.Quiz.List)
		auth.GET("/quiz/page/:quizId", ctrl.Quiz.GetRaw)
		auth.GET("/quiz/:quizId", ctrl.Quiz.Get)
		auth.POST("/quiz/create-quiz", ctrl.Quiz.Create)
		auth.POST("/quiz/create-question", ctrl.Quiz.CreateQuestion)
		auth.GET("/quiz/get-all-questions", ctrl.Quiz.ListQuestions)
		auth.GET("/quiz/get-question/:questionId", ctrl.Quiz.GetQuestion)
		auth.GET("/quiz/soloquiz/:quizId", ctrl.Quiz.StartSolo)
		auth.POST("/quiz/soloquiz/:quizId", ctrl.Quiz.StartSolo)
		auth.POST("/quiz/submit-solo", ctrl.Quiz.SubmitSolo)

		auth.POST("/duel/create", ctrl.Duel.Create)
		auth.POST("/duel/join/:roomCode", ctrl.Duel.Join)
		auth.GET("/duel/my-duels", ctrl.Duel.MyDuels)
		auth.GET("/duel/:duelId", ctrl.Duel.Get)
		auth.POST("/duel/:duelId/submit", ctrl.Duel.Submit)

		auth.GET("/user/fetchprofile", ctrl.Profile.Fetch)
		auth.PUT("/user/updateprofile", ctrl.Profile.Update)
		auth.GET("/leaderboard", ctrl.Leaderboard.Get)
	}

	return router
}
