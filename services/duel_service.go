package services

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"quizarena/apperr"
	"quizarena/models"
	"quizarena/utils"
)

// Events broadcast to a duel's room. Clients subscribe to the room keyed by
// duel id; a client that connects late recovers state via Get, not by
// replaying missed events.
const (
	EventDuelStarted  = "duel:started"
	EventDuelProgress = "duel:progress"
	EventDuelFinished = "duel:finished"
)

// myDuelsLimit caps the duel history listing.
const myDuelsLimit = 20

// DuelRepository is the persistence contract of the duel state machine.
// ConditionalUpdate must only apply the patch while the duel still has the
// expected status and matches every guard field; that conditional write is
// what serializes racing joins, racing submissions and racing finish
// attempts.
type DuelRepository interface {
	Insert(ctx context.Context, duel *models.Duel) (string, error)
	FindByID(ctx context.Context, id string) (*models.Duel, error)
	FindByCode(ctx context.Context, code string, status models.DuelStatus) (*models.Duel, error)
	CodeInUse(ctx context.Context, code string) (bool, error)
	ConditionalUpdate(ctx context.Context, id string, expected models.DuelStatus, guard, patch bson.M) (bool, error)
	ListByPlayer(ctx context.Context, clerkID string, limit int64) ([]models.Duel, error)
}

// QuizRepository loads quiz content for scoring.
type QuizRepository interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
}

// Notifier broadcasts duel-room events. Emission is best-effort: nobody
// listening is fine, and the notifier never calls back into the service.
type Notifier interface {
	Emit(event string, payload interface{}, room string)
}

// DuelEvent is the payload of every duel-room broadcast. Score and
// both_done are always present: a zero score and a pending opponent are
// meaningful progress states, not absent fields.
type DuelEvent struct {
	DuelID   string `json:"duel_id"`
	PlayerID string `json:"player_id,omitempty"`
	Score    int    `json:"score"`
	BothDone bool   `json:"both_done"`
}

// DuelService owns the duel lifecycle: waiting -> in_battle -> finished.
// All cross-request coordination goes through the persisted duel document;
// there is no in-process duel state.
type DuelService struct {
	duels    DuelRepository
	quizzes  QuizRepository
	users    UserRepository
	ratings  *RatingService
	notifier Notifier
}

func NewDuelService(duels DuelRepository, quizzes QuizRepository, users UserRepository, ratings *RatingService, notifier Notifier) *DuelService {
	return &DuelService{
		duels:    duels,
		quizzes:  quizzes,
		users:    users,
		ratings:  ratings,
		notifier: notifier,
	}
}

type CreateDuelResult struct {
	DuelID   string `json:"duel_id"`
	RoomCode string `json:"room_code"`
}

// Create opens a duel for the given quiz with the caller as player 1 and a
// fresh room code, unique among duels still waiting for an opponent.
func (s *DuelService) Create(ctx context.Context, quizID, clerkID string) (*CreateDuelResult, error) {
	if quizID == "" {
		return nil, apperr.Validation("quiz_id is required")
	}
	if _, err := s.quizzes.FindByID(ctx, quizID); err != nil {
		return nil, err
	}

	code, err := utils.UniqueRoomCode(func(code string) (bool, error) {
		return s.duels.CodeInUse(ctx, code)
	})
	if err != nil {
		return nil, err
	}

	duel := &models.Duel{
		RoomCode:  code,
		QuizID:    quizID,
		Player1ID: clerkID,
		Status:    models.DuelStatusWaiting,
		CreatedAt: time.Now().UTC(),
	}

	duelID, err := s.duels.Insert(ctx, duel)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"duel_id": duelID, "room_code": code, "player1": clerkID}).Info("duel created")
	return &CreateDuelResult{DuelID: duelID, RoomCode: code}, nil
}

type JoinDuelResult struct {
	DuelID string `json:"duel_id"`
	QuizID string `json:"quiz_id"`
}

// Join puts the caller into a waiting duel as player 2 and starts the
// battle. The transition is a conditional update keyed on the duel still
// being in waiting, so if two join attempts race on the same code only the
// first wins; the loser gets the same not-found failure as a stale code.
func (s *DuelService) Join(ctx context.Context, roomCode, clerkID string) (*JoinDuelResult, error) {
	code := strings.ToUpper(strings.TrimSpace(roomCode))
	if code == "" {
		return nil, apperr.Validation("room code is required")
	}

	duel, err := s.duels.FindByCode(ctx, code, models.DuelStatusWaiting)
	if err != nil {
		return nil, err
	}
	if duel.Player1ID == clerkID {
		return nil, apperr.Forbidden("you cannot join your own duel")
	}

	duelID := duel.ID.Hex()
	patch := bson.M{"player2_id": clerkID, "status": models.DuelStatusInBattle}
	matched, err := s.duels.ConditionalUpdate(ctx, duelID, models.DuelStatusWaiting, nil, patch)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperr.NotFound("duel not found or already started")
	}

	s.notifier.Emit(EventDuelStarted, DuelEvent{DuelID: duelID}, duelID)
	log.WithFields(log.Fields{"duel_id": duelID, "player2": clerkID}).Info("duel started")

	return &JoinDuelResult{DuelID: duelID, QuizID: duel.QuizID}, nil
}

type SubmitDuelResult struct {
	Score       int                 `json:"score"`
	BothDone    bool                `json:"both_done"`
	WinnerID    *string             `json:"winner_id"`
	RatingDelta int                 `json:"rating_delta"`
	Breakdown   []models.UserAnswer `json:"details"`
}

// Submit scores one player's answers and records them on the duel. The
// write patches only the submitting player's score and done flag, so the
// two players' concurrent submissions cannot clobber each other. When both
// done flags are set the duel finishes: winner derived from the two scores,
// draws allowed, and rating settlement triggered exactly once.
func (s *DuelService) Submit(ctx context.Context, duelID, clerkID string, answers []AnswerSubmission) (*SubmitDuelResult, error) {
	duel, err := s.duels.FindByID(ctx, duelID)
	if err != nil {
		return nil, err
	}

	isPlayer1 := duel.Player1ID == clerkID
	if !duel.IsParticipant(clerkID) {
		return nil, apperr.Forbidden("you are not part of this duel")
	}
	if duel.Status != models.DuelStatusInBattle {
		return nil, apperr.InvalidTransition("duel is not in battle")
	}
	if (isPlayer1 && duel.Player1Done) || (!isPlayer1 && duel.Player2Done) {
		return nil, apperr.Conflict("answers already submitted for this duel")
	}

	quiz, err := s.quizzes.FindByID(ctx, duel.QuizID)
	if err != nil {
		return nil, err
	}
	total, breakdown := ScoreQuiz(quiz, answers)

	// Guarding on the done flag keeps a pair of racing submissions from
	// the same player down to one recorded score.
	patch := bson.M{"player1_score": total, "player1_done": true}
	guard := bson.M{"player1_done": false}
	if !isPlayer1 {
		patch = bson.M{"player2_score": total, "player2_done": true}
		guard = bson.M{"player2_done": false}
	}
	matched, err := s.duels.ConditionalUpdate(ctx, duelID, models.DuelStatusInBattle, guard, patch)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperr.Conflict("duel is no longer accepting submissions")
	}

	// Re-read: the other player may have submitted in the meantime.
	duel, err = s.duels.FindByID(ctx, duelID)
	if err != nil {
		return nil, err
	}

	result := &SubmitDuelResult{
		Score:     total,
		BothDone:  duel.BothDone(),
		Breakdown: breakdown,
	}

	if result.BothDone {
		winnerID, err := s.finish(ctx, duel)
		if err != nil {
			return nil, err
		}
		result.WinnerID = winnerID
		if winnerID != nil {
			if *winnerID == clerkID {
				result.RatingDelta = s.ratings.Delta()
			} else {
				result.RatingDelta = -s.ratings.Delta()
			}
		}
	}

	event := DuelEvent{DuelID: duelID, PlayerID: clerkID, Score: total, BothDone: result.BothDone}
	s.notifier.Emit(EventDuelProgress, event, duelID)
	if result.BothDone {
		s.notifier.Emit(EventDuelFinished, event, duelID)
	}

	return result, nil
}

// finish moves the duel to its terminal state. The transition is
// conditional on the duel still being in battle: if both submission
// handlers observe "both done" concurrently, only one of them wins the
// swap and settles ratings; the loser just reads back the stored outcome.
func (s *DuelService) finish(ctx context.Context, duel *models.Duel) (*string, error) {
	var winnerID *string
	switch {
	case duel.Player1Score > duel.Player2Score:
		winnerID = &duel.Player1ID
	case duel.Player2Score > duel.Player1Score:
		winnerID = &duel.Player2ID
	}

	duelID := duel.ID.Hex()
	patch := bson.M{"status": models.DuelStatusFinished, "winner_id": winnerID}
	matched, err := s.duels.ConditionalUpdate(ctx, duelID, models.DuelStatusInBattle, nil, patch)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Lost the finish race; the other submission already settled.
		settled, err := s.duels.FindByID(ctx, duelID)
		if err != nil {
			return nil, err
		}
		return settled.WinnerID, nil
	}

	duel.Status = models.DuelStatusFinished
	duel.WinnerID = winnerID
	if err := s.ratings.Settle(ctx, duel); err != nil {
		return nil, err
	}
	return winnerID, nil
}

// DuelView is a duel plus resolved player names for display.
type DuelView struct {
	models.Duel
	Player1Name string `json:"player1_name,omitempty"`
	Player2Name string `json:"player2_name,omitempty"`
}

// Get returns the duel with player names resolved. This is also the
// recovery path for clients that subscribed to the room too late to see a
// broadcast.
func (s *DuelService) Get(ctx context.Context, duelID string) (*DuelView, error) {
	duel, err := s.duels.FindByID(ctx, duelID)
	if err != nil {
		return nil, err
	}

	view := &DuelView{Duel: *duel}
	view.Player1Name = s.playerName(ctx, duel.Player1ID)
	view.Player2Name = s.playerName(ctx, duel.Player2ID)
	return view, nil
}

// playerName falls back to the raw clerk id when no profile exists.
func (s *DuelService) playerName(ctx context.Context, clerkID string) string {
	if clerkID == "" {
		return ""
	}
	user, err := s.users.FindByClerkID(ctx, clerkID)
	if err != nil || user.Name == "" {
		return clerkID
	}
	return user.Name
}

// MyDuels lists the caller's most recent duels, newest first.
func (s *DuelService) MyDuels(ctx context.Context, clerkID string) ([]models.Duel, error) {
	return s.duels.ListByPlayer(ctx, clerkID, myDuelsLimit)
}
