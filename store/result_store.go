package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"quizarena/apperr"
	"quizarena/models"
)

// ResultStore persists scored submissions and solo play sessions.
type ResultStore struct {
	results      *mongo.Collection
	soloSessions *mongo.Collection
}

func NewResultStore(database *mongo.Database) *ResultStore {
	return &ResultStore{
		results:      database.Collection("results"),
		soloSessions: database.Collection("solo_sessions"),
	}
}

func (s *ResultStore) SaveResult(ctx context.Context, result *models.QuizResult) (string, error) {
	res, err := s.results.InsertOne(ctx, result)
	if err != nil {
		return "", apperr.Unavailable("failed to save result", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperr.Unavailable("unexpected result id type", nil)
	}
	return id.Hex(), nil
}

// FindSoloSession returns the player's session for a quiz, nil if none.
func (s *ResultStore) FindSoloSession(ctx context.Context, quizID, clerkID string) (*models.SoloSession, error) {
	var session models.SoloSession
	err := s.soloSessions.FindOne(ctx, bson.M{"quiz_id": quizID, "clerk_id": clerkID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch solo session", err)
	}
	return &session, nil
}

func (s *ResultStore) InsertSoloSession(ctx context.Context, session *models.SoloSession) (string, error) {
	res, err := s.soloSessions.InsertOne(ctx, session)
	if err != nil {
		return "", apperr.Unavailable("failed to create solo session", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperr.Unavailable("unexpected session id type", nil)
	}
	return id.Hex(), nil
}

// FinishSoloSession closes a session with its final score.
func (s *ResultStore) FinishSoloSession(ctx context.Context, sessionID string, score int) error {
	objectID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return apperr.NotFound("solo session not found")
	}

	_, err = s.soloSessions.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": models.SoloStatusFinished, "score": score}},
	)
	if err != nil {
		return apperr.Unavailable("failed to finish solo session", err)
	}
	return nil
}
