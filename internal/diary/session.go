package diary

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionState is the editor session's position in its lifecycle.
type SessionState int

const (
	// StateEmpty means no date is selected.
	StateEmpty SessionState = iota
	// StateLoaded means a date is selected and its entry (or defaults) is
	// in memory and editable.
	StateLoaded
	// StateSaving means a save is running against the backend.
	StateSaving
	// StateDeleting means a delete is running against the backend.
	StateDeleting
)

func (s SessionState) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateSaving:
		return "saving"
	case StateDeleting:
		return "deleting"
	}
	return "unknown"
}

// CacheInvalidator drops derived calendar state for a user's date after a
// save or delete changed month membership.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID, date string)
}

// EntryEditorSession binds a selected date to an in-progress edit: the loaded
// entry snapshot, the mutable text/mood/color fields and the attachment set.
// It orchestrates save and delete against the backend.
//
// Saves are explicit, never implicit: selecting another date discards any
// unsaved state. The original client was single-threaded; behind an HTTP
// surface double-submits are easy, so Save and Delete reject a second call
// while one is already in flight instead of interleaving uploads.
type EntryEditorSession struct {
	mu sync.Mutex

	userID string
	state  SessionState

	date      string
	exists    bool
	text      string
	mood      *int
	color     int
	updatedAt string

	attachments *AttachmentSet

	docs        DocumentStore
	objects     ObjectStore
	resizer     ImageResizer
	invalidator CacheInvalidator
	logger      *zap.SugaredLogger

	lastActive time.Time
	now        func() time.Time
}

// NewSession creates an empty session for one user. invalidator may be nil.
func NewSession(userID string, docs DocumentStore, objects ObjectStore, resizer ImageResizer, invalidator CacheInvalidator, logger *zap.SugaredLogger) *EntryEditorSession {
	return &EntryEditorSession{
		userID:      userID,
		state:       StateEmpty,
		attachments: NewAttachmentSet(),
		docs:        docs,
		objects:     objects,
		resizer:     resizer,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
		lastActive:  time.Now(),
	}
}

// Snapshot is the session's externally visible state, enough for the
// presentation layer to render the editor without further calls.
type Snapshot struct {
	State     string   `json:"state"`
	Date      string   `json:"date"`
	Exists    bool     `json:"exists"`
	Text      string   `json:"text"`
	Mood      *int     `json:"mood"`
	Color     int      `json:"color"`
	Images    []string `json:"images"`
	Pending   []string `json:"pending"`
	UpdatedAt string   `json:"updatedAt"`
}

// Snapshot returns the current editor state.
func (s *EntryEditorSession) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *EntryEditorSession) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:     s.state.String(),
		Date:      s.date,
		Exists:    s.exists,
		Text:      s.text,
		Mood:      s.mood,
		Color:     s.color,
		Images:    []string{},
		Pending:   []string{},
		UpdatedAt: s.updatedAt,
	}
	for _, item := range s.attachments.Items() {
		switch a := item.(type) {
		case PersistedImage:
			snap.Images = append(snap.Images, a.URL)
		case PendingImage:
			snap.Pending = append(snap.Pending, a.Filename)
		}
	}
	return snap
}

// LastActive reports when the session was last touched; the idle sweeper
// uses it to evict abandoned sessions.
func (s *EntryEditorSession) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *EntryEditorSession) touchLocked() {
	s.lastActive = s.now()
}

// SelectDate loads the entry for date (or defaults when none exists) and
// moves the session to Loaded. Any previous unsaved state is discarded
// without persisting it. Allowed from any state except mid save/delete.
func (s *EntryEditorSession) SelectDate(ctx context.Context, date string) error {
	if !ValidDate(date) {
		return ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSaving || s.state == StateDeleting {
		return ErrOperationInFlight
	}
	s.touchLocked()

	entry, err := s.docs.GetEntry(ctx, s.userID, date)
	if err != nil {
		return err
	}

	s.date = date
	if entry != nil {
		s.exists = true
		s.text = entry.Text
		s.mood = entry.Mood
		s.color = entry.Color
		s.updatedAt = entry.UpdatedAt
		s.attachments.LoadPersisted(entry.Images)
	} else {
		s.exists = false
		s.text = ""
		s.mood = nil
		s.color = DefaultColor
		s.updatedAt = ""
		s.attachments.Reset()
	}
	s.state = StateLoaded
	return nil
}

// SelectToday is SelectDate with the server's current local date.
func (s *EntryEditorSession) SelectToday(ctx context.Context) error {
	return s.SelectDate(ctx, s.now().Format(DateLayout))
}

// SetText replaces the entry text. Pure local mutation.
func (s *EntryEditorSession) SetText(text string) error {
	return s.edit(func() { s.text = text })
}

// SetMood replaces the mood index; nil clears it.
func (s *EntryEditorSession) SetMood(mood *int) error {
	return s.edit(func() { s.mood = mood })
}

// SetColor replaces the color index.
func (s *EntryEditorSession) SetColor(color int) error {
	return s.edit(func() { s.color = color })
}

func (s *EntryEditorSession) edit(apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoaded {
		return ErrNoDateSelected
	}
	s.touchLocked()
	apply()
	return nil
}

// AddImages stages newly selected files, admitting as many as fit under the
// image ceiling.
func (s *EntryEditorSession) AddImages(files []PendingImage) (admitted, rejected int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoaded {
		return 0, 0, ErrNoDateSelected
	}
	s.touchLocked()
	admitted, rejected = s.attachments.AddPending(files)
	return admitted, rejected, nil
}

// RemoveImage drops the attachment at index, persisted or pending alike. A
// removed persisted image is only deleted remotely by the next Save's
// document overwrite leaving its URL out; the object itself is kept until
// entry deletion purges it.
func (s *EntryEditorSession) RemoveImage(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLoaded {
		return ErrNoDateSelected
	}
	s.touchLocked()
	return s.attachments.RemoveAt(index)
}

// Save reconciles the attachment set and writes the entry document. On
// success the session reflects the freshly persisted state; on failure the
// in-memory edit is retained untouched and the error is returned for the
// caller to present.
func (s *EntryEditorSession) Save(ctx context.Context) (*Entry, error) {
	s.mu.Lock()
	if s.state == StateSaving || s.state == StateDeleting {
		s.mu.Unlock()
		return nil, ErrOperationInFlight
	}
	if s.state != StateLoaded {
		s.mu.Unlock()
		return nil, ErrNoDateSelected
	}
	if s.text == "" && s.mood == nil && s.attachments.Len() == 0 {
		s.mu.Unlock()
		return nil, ErrEmptyEntry
	}
	s.touchLocked()
	s.state = StateSaving
	date := s.date
	s.mu.Unlock()

	entry, err := s.doSave(ctx, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoaded
	if err != nil {
		return nil, err
	}

	s.exists = true
	s.updatedAt = entry.UpdatedAt
	s.attachments.LoadPersisted(entry.Images)
	return entry, nil
}

func (s *EntryEditorSession) doSave(ctx context.Context, date string) (*Entry, error) {
	urls, err := s.attachments.Reconcile(ctx, s.objects, s.resizer, s.userID, date)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		Text:      s.text,
		Mood:      s.mood,
		Color:     s.color,
		Images:    urls,
		UpdatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.docs.PutEntry(ctx, s.userID, date, entry); err != nil {
		return nil, err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, s.userID, date)
	}
	if s.logger != nil {
		s.logger.Infow("entry saved", "user_uid", s.userID, "date", date, "images", len(urls))
	}
	return entry, nil
}

// Delete purges the entry's stored images and removes the document, then
// empties the session. Image purge failures are logged and swallowed; the
// entry counts as deleted only if the document delete itself succeeds.
func (s *EntryEditorSession) Delete(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateSaving || s.state == StateDeleting {
		s.mu.Unlock()
		return ErrOperationInFlight
	}
	if s.state != StateLoaded {
		s.mu.Unlock()
		return ErrNoDateSelected
	}
	if !s.exists {
		s.mu.Unlock()
		return ErrNoEntry
	}
	s.touchLocked()
	s.state = StateDeleting
	date := s.date
	s.mu.Unlock()

	s.attachments.Purge(ctx, s.objects, s.logger)
	err := s.docs.DeleteEntry(ctx, s.userID, date)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateLoaded
		return err
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, s.userID, date)
	}
	if s.logger != nil {
		s.logger.Infow("entry deleted", "user_uid", s.userID, "date", date)
	}

	s.state = StateEmpty
	s.date = ""
	s.exists = false
	s.text = ""
	s.mood = nil
	s.color = DefaultColor
	s.updatedAt = ""
	s.attachments.Reset()
	return nil
}
