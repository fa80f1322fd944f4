package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DuelStatus is the duel lifecycle state. Transitions only move forward:
// waiting -> in_battle -> finished.
type DuelStatus string

const (
	DuelStatusWaiting  DuelStatus = "waiting"
	DuelStatusInBattle DuelStatus = "in_battle"
	DuelStatusFinished DuelStatus = "finished"
)

// Duel is the central record of a two-player quiz battle. The persisted
// document is the single synchronization point between the two players'
// requests: joins and the finish transition are guarded by conditional
// updates on Status, and each submission patches only that player's
// score/done fields.
type Duel struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	RoomCode     string             `bson:"room_code" json:"room_code"`
	QuizID       string             `bson:"quiz_id" json:"quiz_id"`
	Player1ID    string             `bson:"player1_id" json:"player1_id"`
	Player2ID    string             `bson:"player2_id,omitempty" json:"player2_id,omitempty"`
	Status       DuelStatus         `bson:"status" json:"status"`
	Player1Score int                `bson:"player1_score" json:"player1_score"`
	Player2Score int                `bson:"player2_score" json:"player2_score"`
	Player1Done  bool               `bson:"player1_done" json:"player1_done"`
	Player2Done  bool               `bson:"player2_done" json:"player2_done"`
	WinnerID     *string            `bson:"winner_id" json:"winner_id"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// IsParticipant reports whether the given player is part of this duel.
func (d *Duel) IsParticipant(clerkID string) bool {
	return d.Player1ID == clerkID || (d.Player2ID != "" && d.Player2ID == clerkID)
}

// BothDone reports whether both players have submitted their answers.
func (d *Duel) BothDone() bool {
	return d.Player1Done && d.Player2Done
}
