package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"quizarena/apperr"
	"quizarena/middlewares"
)

// respondError maps a domain error kind to an HTTP status and a tagged
// failure body. Unknown and infrastructure errors are logged and surfaced
// without internal detail.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindInvalidTransition, apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindUnavailable:
		status = http.StatusServiceUnavailable
		log.WithError(err).Error("infrastructure failure")
	default:
		log.WithError(err).Error("unhandled error")
	}

	c.JSON(status, gin.H{"success": false, "error": apperr.Message(err)})
}

// callerID returns the verified clerk id the auth middleware stored.
func callerID(c *gin.Context) string {
	return c.GetString(middlewares.ClerkIDKey)
}
