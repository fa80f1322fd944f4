package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizarena/apperr"
	"quizarena/models"
)

// UserStore persists player profiles keyed by clerk id.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(database *mongo.Database) *UserStore {
	return &UserStore{col: database.Collection("users")}
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		return apperr.Unavailable("failed to create user", err)
	}
	return nil
}

func (s *UserStore) FindByClerkID(ctx context.Context, clerkID string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"clerk_id": clerkID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch user", err)
	}
	return &user, nil
}

// UpdateByClerkID applies a field patch to a profile.
func (s *UserStore) UpdateByClerkID(ctx context.Context, clerkID string, patch bson.M) error {
	res, err := s.col.UpdateOne(ctx, bson.M{"clerk_id": clerkID}, bson.M{"$set": patch})
	if err != nil {
		return apperr.Unavailable("failed to update user", err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

// IncrementCounters applies atomic counter increments to a profile. Rating
// settlement uses this so a player settled by several concurrently
// finishing duels never loses an update to a read-modify-write race.
func (s *UserStore) IncrementCounters(ctx context.Context, clerkID string, inc bson.M) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"clerk_id": clerkID}, bson.M{"$inc": inc})
	if err != nil {
		return apperr.Unavailable("failed to update user counters", err)
	}
	return nil
}

// Leaderboard returns the top profiles by rating.
func (s *UserStore) Leaderboard(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().SetSort(bson.M{"elo": -1}).SetLimit(limit)
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch leaderboard", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, apperr.Unavailable("failed to decode leaderboard", err)
	}
	return users, nil
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperr.Unavailable("failed to count users", err)
	}
	return count, nil
}
