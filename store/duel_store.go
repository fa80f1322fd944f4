package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizarena/apperr"
	"quizarena/models"
)

// DuelStore persists duel documents. All writes after creation go through
// field-level patches so two players' requests never clobber each other,
// and state transitions are guarded by the expected status.
type DuelStore struct {
	col *mongo.Collection
}

func NewDuelStore(database *mongo.Database) *DuelStore {
	return &DuelStore{col: database.Collection("duels")}
}

func (s *DuelStore) Insert(ctx context.Context, duel *models.Duel) (string, error) {
	res, err := s.col.InsertOne(ctx, duel)
	if err != nil {
		return "", apperr.Unavailable("failed to create duel", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperr.Unavailable("unexpected duel id type", nil)
	}
	return id.Hex(), nil
}

func (s *DuelStore) FindByID(ctx context.Context, id string) (*models.Duel, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NotFound("duel not found")
	}

	var duel models.Duel
	err = s.col.FindOne(ctx, bson.M{"_id": objectID}).Decode(&duel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("duel not found")
	}
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch duel", err)
	}
	return &duel, nil
}

// FindByCode looks a duel up by room code, restricted to the given status.
// Codes are only unique among waiting duels, so callers always filter.
func (s *DuelStore) FindByCode(ctx context.Context, code string, status models.DuelStatus) (*models.Duel, error) {
	var duel models.Duel
	err := s.col.FindOne(ctx, bson.M{"room_code": code, "status": status}).Decode(&duel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("duel not found or already started")
	}
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch duel", err)
	}
	return &duel, nil
}

// CodeInUse reports whether a code is taken by a duel still waiting for an
// opponent. Codes of started duels are free for reuse.
func (s *DuelStore) CodeInUse(ctx context.Context, code string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"room_code": code, "status": models.DuelStatusWaiting})
	if err != nil {
		return false, apperr.Unavailable("failed to check room code", err)
	}
	return count > 0, nil
}

// ConditionalUpdate applies a field patch only if the duel is still in the
// expected status and matches every guard field, and reports whether the
// update matched. This is the compare-and-swap primitive behind the join,
// submit and finish transitions.
func (s *DuelStore) ConditionalUpdate(ctx context.Context, id string, expected models.DuelStatus, guard, patch bson.M) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperr.NotFound("duel not found")
	}

	filter := bson.M{"_id": objectID, "status": expected}
	for field, value := range guard {
		filter[field] = value
	}

	res, err := s.col.UpdateOne(ctx, filter, bson.M{"$set": patch})
	if err != nil {
		return false, apperr.Unavailable("failed to update duel", err)
	}
	return res.MatchedCount == 1, nil
}

// ListByPlayer returns the player's most recent duels, newest first.
func (s *DuelStore) ListByPlayer(ctx context.Context, clerkID string, limit int64) ([]models.Duel, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"player1_id": clerkID},
		bson.M{"player2_id": clerkID},
	}}
	opts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(limit)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Unavailable("failed to list duels", err)
	}
	defer cursor.Close(ctx)

	var duels []models.Duel
	if err := cursor.All(ctx, &duels); err != nil {
		return nil, apperr.Unavailable("failed to decode duels", err)
	}
	return duels, nil
}
