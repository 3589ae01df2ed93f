package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hibi-app/hibi-server/internal/backend"
	"github.com/hibi-app/hibi-server/internal/diary"
)

func responseFor(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, err)
	return w
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty entry", diary.ErrEmptyEntry, http.StatusBadRequest},
		{"invalid date", diary.ErrInvalidDate, http.StatusBadRequest},
		{"index out of range", diary.ErrIndexOutOfRange, http.StatusBadRequest},
		{"no date selected", diary.ErrNoDateSelected, http.StatusBadRequest},
		{"no entry", diary.ErrNoEntry, http.StatusNotFound},
		{"in flight", diary.ErrOperationInFlight, http.StatusConflict},
		{"upload error", &diary.UploadError{Position: 2, Err: errors.New("boom")}, http.StatusBadGateway},
		{"auth", backend.ErrAuth, http.StatusUnauthorized},
		{"permission denied", backend.ErrPermissionDenied, http.StatusForbidden},
		{"unavailable", backend.ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := responseFor(tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRespondErrorUploadPosition(t *testing.T) {
	w := responseFor(&diary.UploadError{Position: 3, Err: errors.New("boom")})
	assert.Contains(t, w.Body.String(), `"position":3`)
}

func TestRespondErrorWrappedTaxonomy(t *testing.T) {
	// Classified backend errors arrive wrapped; the mapping must still hit.
	w := responseFor(errors.Join(backend.ErrUnavailable, errors.New("dial tcp: timeout")))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
