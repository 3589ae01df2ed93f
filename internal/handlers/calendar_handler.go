package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hibi-app/hibi-server/internal/diary"
	calmodels "github.com/hibi-app/hibi-server/internal/models/calendar_month"
)

type CalendarHandler struct {
	index  *diary.CalendarIndex
	logger *zap.SugaredLogger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(index *diary.CalendarIndex, logger *zap.SugaredLogger) *CalendarHandler {
	return &CalendarHandler{index: index, logger: logger}
}

// Month returns the dates in the requested month that have an entry, each
// mapped to its color tag. The client calls this on every calendar render.
func (h *CalendarHandler) Month(c *gin.Context) {
	var req calmodels.CalendarMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	uid, ok := userUID(c)
	if !ok {
		return
	}

	days, err := h.index.BuildForMonth(c.Request.Context(), uid, req.Year, req.Month)
	if err != nil {
		h.logError(c, err, "build calendar month failed", "year", req.Year, "month", req.Month)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, calmodels.CalendarMonthResponse{
		Year:  req.Year,
		Month: req.Month,
		Days:  days,
	})
}
