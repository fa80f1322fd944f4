package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"quizarena/store"
)

// ProfileController serves and updates the caller's player profile.
type ProfileController struct {
	users *store.UserStore
}

func NewProfileController(users *store.UserStore) *ProfileController {
	return &ProfileController{users: users}
}

// Fetch handles GET /user/fetchprofile.
func (ctrl *ProfileController) Fetch(c *gin.Context) {
	user, err := ctrl.users.FindByClerkID(c.Request.Context(), callerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"profile": gin.H{
			"clerk_id":  user.ClerkID,
			"name":      user.Name,
			"email":     user.Email,
			"promotion": user.Promotion,
			"mention":   user.Mention,
			"elo":       user.Elo,
		},
		"stats": gin.H{
			"total_duels": user.TotalDuels,
			"wins":        user.Wins,
			"losses":      user.Losses,
		},
	})
}

// Update handles PUT /user/updateprofile. Only the provided fields are
// patched; rating and duel counters are never writable here — they belong
// to rating settlement.
func (ctrl *ProfileController) Update(c *gin.Context) {
	var input struct {
		Name      *string `json:"name"`
		Promotion *string `json:"promotion"`
		Mention   *string `json:"mention"`
		Email     *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request payload"})
		return
	}

	patch := bson.M{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Promotion != nil {
		patch["promotion"] = *input.Promotion
	}
	if input.Mention != nil {
		patch["mention"] = *input.Mention
	}
	if input.Email != nil {
		patch["email"] = *input.Email
	}
	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "nothing to update"})
		return
	}

	if err := ctrl.users.UpdateByClerkID(c.Request.Context(), callerID(c), patch); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated"})
}
