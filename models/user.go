package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a player profile. The clerk_id is the authoritative player
// identifier everywhere; the Mongo _id is never used for lookups.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ClerkID    string             `bson:"clerk_id" json:"clerk_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Promotion  string             `bson:"promotion" json:"promotion"`
	Mention    string             `bson:"mention" json:"mention"`
	Elo        int                `bson:"elo" json:"elo"`
	TotalDuels int                `bson:"total_duels" json:"total_duels"`
	Wins       int                `bson:"wins" json:"wins"`
	Losses     int                `bson:"losses" json:"losses"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
