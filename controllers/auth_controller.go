package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"quizarena/models"
	"quizarena/rating"
	"quizarena/services"
	"quizarena/store"
)

// AuthController delegates account management to the identity provider and
// mirrors each account into a local player profile.
type AuthController struct {
	clerk *services.ClerkService
	users *store.UserStore
}

func NewAuthController(clerk *services.ClerkService, users *store.UserStore) *AuthController {
	return &AuthController{clerk: clerk, users: users}
}

// Register handles POST /auth/register: creates the provider account and
// the local profile with the initial rating.
func (ctrl *AuthController) Register(c *gin.Context) {
	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Promotion string `json:"promotion"`
		Mention   string `json:"mention"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email and password are required"})
		return
	}

	clerkUser, err := ctrl.clerk.CreateUser(c.Request.Context(), input.Email, input.Password, input.FirstName, input.LastName)
	if err != nil {
		respondError(c, err)
		return
	}

	name := strings.TrimSpace(input.FirstName + " " + input.LastName)
	if name == "" {
		name = strings.Split(input.Email, "@")[0]
	}
	promotion := input.Promotion
	if promotion == "" {
		promotion = "licence"
	}
	mention := input.Mention
	if mention == "" {
		mention = "informatique"
	}

	user := &models.User{
		ClerkID:   clerkUser.ID,
		Name:      name,
		Email:     input.Email,
		Promotion: promotion,
		Mention:   mention,
		Elo:       rating.InitialRating,
		CreatedAt: time.Now().UTC(),
	}

	stored := true
	if err := ctrl.users.Insert(c.Request.Context(), user); err != nil {
		// The provider account exists; the profile can be backfilled later.
		log.WithField("clerk_id", clerkUser.ID).WithError(err).Warn("failed to store user profile")
		stored = false
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"message":         "User registered successfully",
		"user":            gin.H{"user_id": clerkUser.ID, "email": input.Email},
		"database_stored": stored,
	})
}

// Login handles POST /auth/login.
func (ctrl *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "email and password are required"})
		return
	}

	clerkUser, err := ctrl.clerk.FindUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	verified, err := ctrl.clerk.VerifyPassword(c.Request.Context(), clerkUser.ID, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !verified {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user": gin.H{
			"user_id":    clerkUser.ID,
			"email":      input.Email,
			"first_name": clerkUser.FirstName,
			"last_name":  clerkUser.LastName,
		},
	})
}

// Logout handles POST /auth/logout. Sessions live with the provider, so
// there is nothing to revoke server-side.
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

// Me handles GET /auth/me.
func (ctrl *AuthController) Me(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "user_id is required"})
		return
	}

	clerkUser, err := ctrl.clerk.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"user_id":    clerkUser.ID,
			"email":      clerkUser.Email(),
			"first_name": clerkUser.FirstName,
			"last_name":  clerkUser.LastName,
		},
	})
}
