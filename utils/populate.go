package utils

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"quizarena/models"
	"quizarena/rating"
	"quizarena/store"
)

func intPtr(v int) *int { return &v }

// SeedSampleData inserts a starter quiz and a few test profiles into an
// empty database so a fresh install has something to play with.
func SeedSampleData(ctx context.Context, quizzes *store.QuizStore, users *store.UserStore) {
	seedQuizzes(ctx, quizzes)
	seedUsers(ctx, users)
}

func seedQuizzes(ctx context.Context, quizzes *store.QuizStore) {
	count, err := quizzes.Count(ctx)
	if err != nil || count > 0 {
		return
	}

	quiz := &models.Quiz{
		Title:      "General Knowledge Warm-up",
		Category:   "general",
		Difficulty: "easy",
		Questions: []models.Question{
			{
				ID:            intPtr(1),
				Text:          "What is the capital of France?",
				Options:       []string{"Paris", "Lyon", "Marseille", "Toulouse"},
				CorrectAnswer: "Paris",
				Points:        10,
				Category:      "geography",
			},
			{
				ID:            intPtr(2),
				Text:          "Which planet is known as the Red Planet?",
				Options:       []string{"Venus", "Mars", "Jupiter", "Saturn"},
				CorrectAnswer: "Mars",
				Points:        10,
				Category:      "science",
			},
			{
				ID:            intPtr(3),
				Text:          "What does CPU stand for?",
				Options:       []string{"Central Processing Unit", "Computer Personal Unit", "Central Program Utility", "Core Processing Unit"},
				CorrectAnswer: "Central Processing Unit",
				Points:        15,
				Category:      "informatique",
			},
		},
	}

	if _, err := quizzes.Insert(ctx, quiz); err != nil {
		log.WithError(err).Warn("failed to seed sample quiz")
		return
	}
	log.Info("seeded sample quiz")
}

func seedUsers(ctx context.Context, users *store.UserStore) {
	count, err := users.Count(ctx)
	if err != nil || count > 0 {
		return
	}

	samples := []models.User{
		{ClerkID: "user_seed_alice", Name: "Alice Martin", Email: "alice@example.com", Promotion: "licence", Mention: "informatique", Elo: rating.InitialRating, CreatedAt: time.Now().UTC()},
		{ClerkID: "user_seed_bob", Name: "Bob Durand", Email: "bob@example.com", Promotion: "master", Mention: "informatique", Elo: rating.InitialRating, CreatedAt: time.Now().UTC()},
	}

	for i := range samples {
		if err := users.Insert(ctx, &samples[i]); err != nil {
			log.WithError(err).Warn("failed to seed sample user")
			return
		}
	}
	log.Info("seeded sample users")
}
