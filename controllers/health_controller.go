package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"quizarena/db"
)

// HealthController reports service liveness and store reachability.
type HealthController struct {
	database *mongo.Database
}

func NewHealthController(database *mongo.Database) *HealthController {
	return &HealthController{database: database}
}

// Index handles GET /.
func (ctrl *HealthController) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "quizarena API running"})
}

// Health handles GET /health with a store ping.
func (ctrl *HealthController) Health(c *gin.Context) {
	if err := db.Ping(c.Request.Context(), ctrl.database); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"mongodb": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mongodb": true, "message": "connected"})
}
