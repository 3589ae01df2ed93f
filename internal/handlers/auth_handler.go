package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hibi-app/hibi-server/internal/backend/firebase"
	loginmodels "github.com/hibi-app/hibi-server/internal/models/login"
	"github.com/hibi-app/hibi-server/internal/sessions"
)

// AuthService is the slice of the Firebase client the auth handler uses.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*firebase.AuthSession, error)
	SignOut(ctx context.Context, uid string) error
}

type AuthHandler struct {
	auth     AuthService
	sessions *sessions.Manager
	logger   *zap.SugaredLogger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(auth AuthService, sessionManager *sessions.Manager, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessionManager,
		logger:   logger,
	}
}

// Login handles email/password sign-in and returns the tokens the client
// sends on subsequent requests.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginmodels.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logError(c, err, "sign-in failed", "email", req.Email)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginmodels.LoginResponse{
		UID:          session.UID,
		Email:        session.Email,
		IDToken:      session.IDToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    session.ExpiresIn,
	})
}

// Logout revokes the caller's refresh tokens and drops their editor session,
// unsaved edits included.
func (h *AuthHandler) Logout(c *gin.Context) {
	uid, ok := userUID(c)
	if !ok {
		return
	}

	if err := h.auth.SignOut(c.Request.Context(), uid); err != nil {
		h.logError(c, err, "sign-out failed")
		respondError(c, err)
		return
	}

	h.sessions.Drop(uid)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
