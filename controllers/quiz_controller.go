package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizarena/models"
	"quizarena/services"
)

// QuizController exposes quiz content management and solo play.
type QuizController struct {
	quizzes *services.QuizService
}

func NewQuizController(quizzes *services.QuizService) *QuizController {
	return &QuizController{quizzes: quizzes}
}

// List handles GET /quiz/get-all-quizzes.
func (ctrl *QuizController) List(c *gin.Context) {
	quizzes, err := ctrl.quizzes.ListQuizzes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quizzes": quizzes})
}

// Get handles GET /quiz/:quizId and returns the quiz with correct answers
// stripped, ready to play.
func (ctrl *QuizController) Get(c *gin.Context) {
	quiz, err := ctrl.quizzes.GetQuiz(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quiz": quiz})
}

// GetRaw handles GET /quiz/page/:quizId, the authoring view with correct
// answers included.
func (ctrl *QuizController) GetRaw(c *gin.Context) {
	quiz, err := ctrl.quizzes.GetQuizRaw(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "quiz": quiz})
}

// Create handles POST /quiz/create-quiz. A quiz is built either from
// inline questions or from existing question-bank ids.
func (ctrl *QuizController) Create(c *gin.Context) {
	var input struct {
		Title       string            `json:"title"`
		Category    string            `json:"category"`
		Description string            `json:"description"`
		Difficulty  string            `json:"difficulty"`
		Level       string            `json:"level"`
		Questions   []models.Question `json:"questions"`
		QuestionIDs []string          `json:"question_ids"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request payload"})
		return
	}

	var quizID string
	var err error
	switch {
	case len(input.Questions) > 0:
		quiz := &models.Quiz{
			Title:      input.Title,
			Category:   input.Category,
			Difficulty: input.Difficulty,
			Questions:  input.Questions,
		}
		quizID, err = ctrl.quizzes.CreateQuiz(c.Request.Context(), quiz)
	case len(input.QuestionIDs) > 0:
		// Legacy clients send description/level instead of category/difficulty.
		category := input.Category
		if category == "" {
			category = input.Description
		}
		difficulty := input.Difficulty
		if difficulty == "" {
			difficulty = input.Level
		}
		quizID, err = ctrl.quizzes.CreateQuizFromQuestionIDs(c.Request.Context(), input.Title, category, difficulty, input.QuestionIDs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "questions or question_ids required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"quiz_id": quizID,
		"message": "Quiz created successfully",
	})
}

// CreateQuestion handles POST /quiz/create-question.
func (ctrl *QuizController) CreateQuestion(c *gin.Context) {
	var question models.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request payload"})
		return
	}

	questionID, err := ctrl.quizzes.CreateQuestion(c.Request.Context(), &question)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"question_id": questionID,
		"message":     "Question created successfully",
	})
}

// ListQuestions handles GET /quiz/get-all-questions.
func (ctrl *QuizController) ListQuestions(c *gin.Context) {
	questions, err := ctrl.quizzes.ListQuestions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"questions": questions,
		"count":     len(questions),
	})
}

// GetQuestion handles GET /quiz/get-question/:questionId.
func (ctrl *QuizController) GetQuestion(c *gin.Context) {
	question, err := ctrl.quizzes.GetQuestion(c.Request.Context(), c.Param("questionId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "question": question})
}

// StartSolo handles GET|POST /quiz/soloquiz/:quizId.
func (ctrl *QuizController) StartSolo(c *gin.Context) {
	start, err := ctrl.quizzes.StartSolo(c.Request.Context(), c.Param("quizId"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	switch start.Status {
	case services.SoloStartFinished:
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"status":  start.Status,
			"error":   "quiz already completed",
		})
	case services.SoloStartInProgress:
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"status":     start.Status,
			"session_id": start.SessionID,
		})
	default:
		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"status":     start.Status,
			"session_id": start.SessionID,
		})
	}
}

// SubmitSolo handles POST /quiz/submit-solo.
func (ctrl *QuizController) SubmitSolo(c *gin.Context) {
	var input struct {
		SessionID string                      `json:"session_id"`
		QuizID    string                      `json:"quiz_id"`
		Answers   []services.AnswerSubmission `json:"answers"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request payload"})
		return
	}

	result, err := ctrl.quizzes.SubmitSolo(c.Request.Context(), input.QuizID, callerID(c), input.SessionID, input.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"score":     result.Score,
		"details":   result.Breakdown,
		"result_id": result.ResultID,
	})
}
