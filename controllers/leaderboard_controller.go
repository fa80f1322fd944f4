package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizarena/store"
)

const leaderboardLimit = 50

// LeaderboardController lists the top-rated players.
type LeaderboardController struct {
	users *store.UserStore
}

func NewLeaderboardController(users *store.UserStore) *LeaderboardController {
	return &LeaderboardController{users: users}
}

type leaderboardEntry struct {
	Rank       int    `json:"rank"`
	ClerkID    string `json:"clerk_id"`
	Name       string `json:"name"`
	Elo        int    `json:"elo"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	TotalDuels int    `json:"total_duels"`
}

// Get handles GET /leaderboard.
func (ctrl *LeaderboardController) Get(c *gin.Context) {
	users, err := ctrl.users.Leaderboard(c.Request.Context(), leaderboardLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]leaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, leaderboardEntry{
			Rank:       i + 1,
			ClerkID:    user.ClerkID,
			Name:       user.Name,
			Elo:        user.Elo,
			Wins:       user.Wins,
			Losses:     user.Losses,
			TotalDuels: user.TotalDuels,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "leaderboard": entries})
}
