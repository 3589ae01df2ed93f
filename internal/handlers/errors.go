package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hibi-app/hibi-server/internal/backend"
	"github.com/hibi-app/hibi-server/internal/diary"
)

// userUID returns the authenticated uid placed in the context by the auth
// middleware, writing the error response itself when it is missing.
func userUID(c *gin.Context) (string, bool) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return "", false
	}
	s, ok := uid.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user context"})
		return "", false
	}
	return s, true
}

// respondError maps the error taxonomy onto HTTP statuses and user-facing
// messages. Raw backend errors never reach the client.
func respondError(c *gin.Context, err error) {
	var uploadErr *diary.UploadError

	switch {
	case errors.Is(err, diary.ErrEmptyEntry):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to save: write some text, pick a mood or add an image"})
	case errors.Is(err, diary.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date"})
	case errors.Is(err, diary.ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image index out of range"})
	case errors.Is(err, diary.ErrNoDateSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select a date first"})
	case errors.Is(err, diary.ErrNoEntry):
		c.JSON(http.StatusNotFound, gin.H{"error": "No entry exists for this date"})
	case errors.Is(err, diary.ErrOperationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "Another save or delete is still running"})
	case errors.As(err, &uploadErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":    "Image upload failed",
			"position": uploadErr.Position,
		})
	case errors.Is(err, backend.ErrAuth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
	case errors.Is(err, backend.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this diary"})
	case errors.Is(err, backend.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "The diary service is temporarily unavailable, please try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
