package services

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"quizarena/models"
	"quizarena/rating"
)

// UserRepository is the slice of the user store the duel subsystem needs.
type UserRepository interface {
	FindByClerkID(ctx context.Context, clerkID string) (*models.User, error)
	IncrementCounters(ctx context.Context, clerkID string, inc bson.M) error
}

// RatingService applies rating settlement to player profiles. Settle is
// invoked exactly once per duel, by the finish transition that won the
// status compare-and-swap.
type RatingService struct {
	users UserRepository
	delta int
}

func NewRatingService(users UserRepository) *RatingService {
	return &RatingService{users: users, delta: rating.DefaultDelta}
}

// Delta is the rating swing of one decisive duel.
func (s *RatingService) Delta() int {
	return s.delta
}

// Settle updates both players' rating and win/loss counters for a finished
// duel. Each player's update is an independent atomic increment, so a
// player finishing several duels at once cannot lose a counter update. A
// duel that never got a second player is not eligible and settles to a
// no-op.
func (s *RatingService) Settle(ctx context.Context, duel *models.Duel) error {
	if duel.Player2ID == "" {
		return nil
	}

	outcome := rating.Decide(duel.Player1Score, duel.Player2Score)
	player1Change, player2Change := rating.Settle(outcome, s.delta)

	if err := s.users.IncrementCounters(ctx, duel.Player1ID, changeToInc(player1Change)); err != nil {
		return err
	}
	if err := s.users.IncrementCounters(ctx, duel.Player2ID, changeToInc(player2Change)); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"duel_id": duel.ID.Hex(),
		"player1": duel.Player1ID,
		"player2": duel.Player2ID,
		"outcome": outcome,
	}).Info("duel settled")
	return nil
}

func changeToInc(change rating.Change) bson.M {
	inc := bson.M{"total_duels": change.TotalDuels}
	if change.Elo != 0 {
		inc["elo"] = change.Elo
	}
	if change.Wins != 0 {
		inc["wins"] = change.Wins
	}
	if change.Losses != 0 {
		inc["losses"] = change.Losses
	}
	return inc
}
