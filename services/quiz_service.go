package services

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"quizarena/apperr"
	"quizarena/models"
	"quizarena/store"
)

// QuizService covers quiz content management and solo play. The scoring
// engine itself (ScoreQuiz) is shared with the duel flow.
type QuizService struct {
	quizzes *store.QuizStore
	results *store.ResultStore
}

func NewQuizService(quizzes *store.QuizStore, results *store.ResultStore) *QuizService {
	return &QuizService{quizzes: quizzes, results: results}
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return s.quizzes.List(ctx)
}

// GetQuiz returns a quiz ready for client display: correct answers
// stripped and question identifiers resolved.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return StripAnswers(quiz), nil
}

// GetQuizRaw returns the quiz as stored, correct answers included. Only
// for authoring surfaces.
func (s *QuizService) GetQuizRaw(ctx context.Context, quizID string) (*models.Quiz, error) {
	return s.quizzes.FindByID(ctx, quizID)
}

func (s *QuizService) CreateQuiz(ctx context.Context, quiz *models.Quiz) (string, error) {
	if quiz.Title == "" {
		return "", apperr.Validation("title is required")
	}
	if len(quiz.Questions) == 0 {
		return "", apperr.Validation("a quiz needs at least one question")
	}
	for i := range quiz.Questions {
		if err := validateQuestion(&quiz.Questions[i]); err != nil {
			return "", err
		}
	}
	if quiz.Difficulty == "" {
		quiz.Difficulty = "medium"
	}
	return s.quizzes.Insert(ctx, quiz)
}

// CreateQuizFromQuestionIDs assembles a quiz out of existing question-bank
// entries. Unknown ids are skipped.
func (s *QuizService) CreateQuizFromQuestionIDs(ctx context.Context, title, category, difficulty string, questionIDs []string) (string, error) {
	if title == "" {
		return "", apperr.Validation("title is required")
	}

	var questions []models.Question
	for _, id := range questionIDs {
		question, err := s.quizzes.FindQuestionByID(ctx, id)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				log.WithField("question_id", id).Warn("skipping unknown question id")
				continue
			}
			return "", err
		}
		questions = append(questions, *question)
	}
	if len(questions) == 0 {
		return "", apperr.Validation("no valid questions for quiz")
	}

	quiz := &models.Quiz{
		Title:      title,
		Category:   category,
		Difficulty: difficulty,
		Questions:  questions,
	}
	return s.CreateQuiz(ctx, quiz)
}

func (s *QuizService) CreateQuestion(ctx context.Context, question *models.Question) (string, error) {
	if err := validateQuestion(question); err != nil {
		return "", err
	}
	return s.quizzes.InsertQuestion(ctx, question)
}

func (s *QuizService) ListQuestions(ctx context.Context) ([]models.Question, error) {
	return s.quizzes.ListQuestions(ctx)
}

func (s *QuizService) GetQuestion(ctx context.Context, questionID string) (*models.Question, error) {
	return s.quizzes.FindQuestionByID(ctx, questionID)
}

func validateQuestion(question *models.Question) error {
	if question.Text == "" {
		return apperr.Validation("question text is required")
	}
	if len(question.Options) < 2 {
		return apperr.Validation("a question needs at least two options")
	}
	if question.CorrectAnswer == "" {
		return apperr.Validation("correct_answer is required")
	}
	return nil
}

// Solo session start outcomes.
const (
	SoloStartNew        = "new"
	SoloStartInProgress = "in_progress"
	SoloStartFinished   = "finished"
)

type SoloStart struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id,omitempty"`
}

// StartSolo opens (or resumes) a solo run of a quiz. A player gets one run
// per quiz: an in-progress session is resumed, a finished one blocks a
// replay.
func (s *QuizService) StartSolo(ctx context.Context, quizID, clerkID string) (*SoloStart, error) {
	if _, err := s.quizzes.FindByID(ctx, quizID); err != nil {
		return nil, err
	}

	existing, err := s.results.FindSoloSession(ctx, quizID, clerkID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == models.SoloStatusFinished {
			return &SoloStart{Status: SoloStartFinished}, nil
		}
		return &SoloStart{Status: SoloStartInProgress, SessionID: existing.ID.Hex()}, nil
	}

	session := &models.SoloSession{
		QuizID:    quizID,
		ClerkID:   clerkID,
		Status:    models.SoloStatusInProgress,
		CreatedAt: time.Now().UTC(),
	}
	sessionID, err := s.results.InsertSoloSession(ctx, session)
	if err != nil {
		return nil, err
	}
	return &SoloStart{Status: SoloStartNew, SessionID: sessionID}, nil
}

type SoloSubmitResult struct {
	Score     int                 `json:"score"`
	Breakdown []models.UserAnswer `json:"details"`
	ResultID  string              `json:"result_id"`
}

// SubmitSolo scores a solo run, persists the audit result and closes the
// session when one was opened.
func (s *QuizService) SubmitSolo(ctx context.Context, quizID, clerkID, sessionID string, answers []AnswerSubmission) (*SoloSubmitResult, error) {
	quiz, err := s.quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	total, breakdown := ScoreQuiz(quiz, answers)

	resultID, err := s.results.SaveResult(ctx, &models.QuizResult{
		ClerkID:   clerkID,
		QuizID:    quizID,
		Score:     total,
		Answers:   breakdown,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if sessionID != "" {
		if err := s.results.FinishSoloSession(ctx, sessionID, total); err != nil {
			log.WithField("session_id", sessionID).WithError(err).Warn("failed to close solo session")
		}
	}

	return &SoloSubmitResult{Score: total, Breakdown: breakdown, ResultID: resultID}, nil
}
