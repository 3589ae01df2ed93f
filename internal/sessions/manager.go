// Package sessions keeps at most one live editor session per authenticated
// user and evicts sessions that have gone idle.
package sessions

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hibi-app/hibi-server/internal/diary"
)

// Manager hands out the single live EntryEditorSession for each user.
// Selecting a new date happens on that one session, which discards any
// unsaved state, so there is never a second session with stale edits.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*diary.EntryEditorSession

	docs        diary.DocumentStore
	objects     diary.ObjectStore
	resizer     diary.ImageResizer
	invalidator diary.CacheInvalidator
	logger      *zap.SugaredLogger

	idleTimeout time.Duration
	cron        *cron.Cron
}

// NewManager creates the registry. idleTimeout bounds how long an untouched
// session survives; the browser original got this bound for free from page
// lifetime.
func NewManager(docs diary.DocumentStore, objects diary.ObjectStore, resizer diary.ImageResizer, invalidator diary.CacheInvalidator, idleTimeout time.Duration, logger *zap.SugaredLogger) *Manager {
	return &Manager{
		sessions:    make(map[string]*diary.EntryEditorSession),
		docs:        docs,
		objects:     objects,
		resizer:     resizer,
		invalidator: invalidator,
		logger:      logger,
		idleTimeout: idleTimeout,
	}
}

// Session returns the user's live session, creating it on first use.
func (m *Manager) Session(userID string) *diary.EntryEditorSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := diary.NewSession(userID, m.docs, m.objects, m.resizer, m.invalidator, m.logger)
	m.sessions[userID] = s
	return s
}

// Drop discards the user's session, unsaved state included. Called on
// logout.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Sweep evicts every session idle longer than the timeout and reports how
// many were removed.
func (m *Manager) Sweep() int {
	cutoff := time.Now().Add(-m.idleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for uid, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			delete(m.sessions, uid)
			removed++
		}
	}
	return removed
}

// StartSweeper schedules Sweep every ten minutes until StopSweeper.
func (m *Manager) StartSweeper() error {
	c := cron.New()
	_, err := c.AddFunc("@every 10m", func() {
		if n := m.Sweep(); n > 0 && m.logger != nil {
			m.logger.Infow("swept idle editor sessions", "count", n)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	m.cron = c
	return nil
}

// StopSweeper stops the background sweeper, if running.
func (m *Manager) StopSweeper() {
	if m.cron != nil {
		m.cron.Stop()
	}
}
