package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Question models a single multiple-choice question. ID is optional: when a
// question has no explicit id, its zero-based position in the quiz acts as
// its identifier. That positional fallback is applied both when serving a
// quiz to clients and when scoring answers, so client-submitted ids
// round-trip. It silently breaks if question order changes after clients
// cached ids; preserved as-is from legacy data.
type Question struct {
	ID            *int     `bson:"id,omitempty" json:"id,omitempty"`
	Text          string   `bson:"text" json:"text"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer string   `bson:"correct_answer,omitempty" json:"correct_answer,omitempty"`
	Points        int      `bson:"points" json:"points"`
	Category      string   `bson:"category" json:"category"`
}

// Quiz is an ordered sequence of questions. LegacyID is a custom string id
// some older documents carry next to the Mongo _id; lookups try _id first
// and fall back to it.
type Quiz struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	LegacyID   string             `bson:"id,omitempty" json:"id,omitempty"`
	Title      string             `bson:"title" json:"title"`
	Category   string             `bson:"category" json:"category"`
	Difficulty string             `bson:"difficulty" json:"difficulty"`
	Questions  []Question         `bson:"questions" json:"questions"`
}

// UserAnswer is one row of a scoring breakdown: the resolved question id,
// what the player picked and whether it was right.
type UserAnswer struct {
	QuestionID     string `bson:"question_id" json:"question_id"`
	SelectedOption string `bson:"selected_option" json:"selected_option"`
	IsCorrect      bool   `bson:"is_correct" json:"is_correct"`
}

// QuizResult is the persisted audit record of one scored submission.
type QuizResult struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ClerkID   string             `bson:"clerk_id" json:"clerk_id"`
	QuizID    string             `bson:"quiz_id" json:"quiz_id"`
	Score     int                `bson:"score" json:"score"`
	Answers   []UserAnswer       `bson:"answers" json:"answers"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Solo session states.
const (
	SoloStatusInProgress = "in_progress"
	SoloStatusFinished   = "finished"
)

// SoloSession tracks a single player's run through a quiz outside of duels.
type SoloSession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	QuizID    string             `bson:"quiz_id" json:"quiz_id"`
	ClerkID   string             `bson:"clerk_id" json:"clerk_id"`
	Status    string             `bson:"status" json:"status"`
	Score     *int               `bson:"score,omitempty" json:"score,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
