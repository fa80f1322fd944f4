package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizarena/services"
)

// DuelController exposes the duel lifecycle over HTTP. All state logic
// lives in the service; the controller only validates payloads and maps
// results.
type DuelController struct {
	duels *services.DuelService
}

func NewDuelController(duels *services.DuelService) *DuelController {
	return &DuelController{duels: duels}
}

// Create handles POST /duel/create.
func (ctrl *DuelController) Create(c *gin.Context) {
	var input struct {
		QuizID string `json:"quiz_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request payload"})
		return
	}

	result, err := ctrl.duels.Create(c.Request.Context(), input.QuizID, callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"duel_id":   result.DuelID,
		"room_code": result.RoomCode,
	})
}

// Join handles POST /duel/join/:roomCode.
func (ctrl *DuelController) Join(c *gin.Context) {
	result, err := ctrl.duels.Join(c.Request.Context(), c.Param("roomCode"), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"duel_id": result.DuelID,
		"quiz_id": result.QuizID,
	})
}

// Get handles GET /duel/:duelId.
func (ctrl *DuelController) Get(c *gin.Context) {
	view, err := ctrl.duels.Get(c.Request.Context(), c.Param("duelId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "duel": view})
}

// Submit handles POST /duel/:duelId/submit.
func (ctrl *DuelController) Submit(c *gin.Context) {
	var input struct {
		Answers []services.AnswerSubmission `json:"answers"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request payload"})
		return
	}

	result, err := ctrl.duels.Submit(c.Request.Context(), c.Param("duelId"), callerID(c), input.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"score":        result.Score,
		"both_done":    result.BothDone,
		"winner_id":    result.WinnerID,
		"rating_delta": result.RatingDelta,
		"details":      result.Breakdown,
	})
}

// MyDuels handles GET /duel/my-duels.
func (ctrl *DuelController) MyDuels(c *gin.Context) {
	duels, err := ctrl.duels.MyDuels(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "duels": duels})
}
