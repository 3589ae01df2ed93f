package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	deletemodels "github.com/hibi-app/hibi-server/internal/models/delete_entry"
	editmodels "github.com/hibi-app/hibi-server/internal/models/edit_entry"
	savemodels "github.com/hibi-app/hibi-server/internal/models/save_entry"
	selectmodels "github.com/hibi-app/hibi-server/internal/models/select_date"
	"github.com/hibi-app/hibi-server/internal/sessions"
)

// DiaryHandler exposes the editor session operations to the presentation
// layer. Every response that leaves the session Loaded carries the full
// editor snapshot so the client can render without further calls.
type DiaryHandler struct {
	sessions *sessions.Manager
	logger   *zap.SugaredLogger
}

// NewDiaryHandler creates a new diary editor handler
func NewDiaryHandler(sessionManager *sessions.Manager, logger *zap.SugaredLogger) *DiaryHandler {
	return &DiaryHandler{
		sessions: sessionManager,
		logger:   logger,
	}
}

// SelectDate loads the entry for the requested date into the caller's
// session, replacing whatever was being edited before.
func (h *DiaryHandler) SelectDate(c *gin.Context) {
	var req selectmodels.SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	uid, ok := userUID(c)
	if !ok {
		return
	}

	session := h.sessions.Session(uid)
	if err := session.SelectDate(c.Request.Context(), req.Date); err != nil {
		h.logError(c, err, "select date failed", "date", req.Date)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

// Today loads the entry for the server's current date.
func (h *DiaryHandler) Today(c *gin.Context) {
	uid, ok := userUID(c)
	if !ok {
		return
	}

	session := h.sessions.Session(uid)
	if err := session.SelectToday(c.Request.Context()); err != nil {
		h.logError(c, err, "select today failed")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

// Edit applies local text/mood/color changes to the session. Nothing is
// persisted until Save.
func (h *DiaryHandler) Edit(c *gin.Context) {
	var req editmodels.EditEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	uid, ok := userUID(c)
	if !ok {
		return
	}

	session := h.sessions.Session(uid)

	if req.Text != nil {
		if err := session.SetText(*req.Text); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.ClearMood {
		if err := session.SetMood(nil); err != nil {
			respondError(c, err)
			return
		}
	} else if req.Mood != nil {
		if err := session.SetMood(req.Mood); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Color != nil {
		if err := session.SetColor(*req.Color); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

// Save uploads pending images and writes the entry document.
func (h *DiaryHandler) Save(c *gin.Context) {
	uid, ok := userUID(c)
	if !ok {
		return
	}

	session := h.sessions.Session(uid)
	snap := session.Snapshot()

	entry, err := session.Save(c.Request.Context())
	if err != nil {
		h.logError(c, err, "save entry failed", "date", snap.Date)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, savemodels.SaveEntryResponse{
		Date:    snap.Date,
		Entry:   *entry,
		Message: "Entry saved successfully",
	})
}

// Delete purges the entry's images and removes the document.
func (h *DiaryHandler) Delete(c *gin.Context) {
	uid, ok := userUID(c)
	if !ok {
		return
	}

	session := h.sessions.Session(uid)
	snap := session.Snapshot()

	if err := session.Delete(c.Request.Context()); err != nil {
		h.logError(c, err, "delete entry failed", "date", snap.Date)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, deletemodels.DeleteEntryResponse{
		Date:    snap.Date,
		Message: "Entry deleted successfully",
	})
}
