// Package diary implements the core of the diary application: the entry
// model, the attachment set with its upload reconciliation, the editor
// session state machine, and the month calendar index.
package diary

import (
	"context"
	"regexp"
	"time"
)

// MaxImages is the ceiling on attachments per entry.
const MaxImages = 5

// DefaultColor is the color index applied when an entry has none ("red", the
// first swatch in the client palette).
const DefaultColor = 0

// Entry is one user's diary record for one calendar date. The date itself is
// the document key, not a field; Mood is nil when no mood was chosen.
type Entry struct {
	Text      string   `firestore:"text" json:"text"`
	Mood      *int     `firestore:"mood" json:"mood"`
	Color     int      `firestore:"color" json:"color"`
	Images    []string `firestore:"images" json:"images"`
	UpdatedAt string   `firestore:"updatedAt" json:"updatedAt"`
}

// DateLayout is the calendar-date form used as the document key.
const DateLayout = "2006-01-02"

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether date is a real calendar date in YYYY-MM-DD form.
// Only valid keys are ever written, which is what keeps the calendar month
// query's fixed "-31" upper bound safe.
func ValidDate(date string) bool {
	if !dateKeyPattern.MatchString(date) {
		return false
	}
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// DocumentStore is the §6 document contract the diary core depends on.
// Implementations return classified backend errors (see internal/backend)
// and (nil, nil) from GetEntry when no entry exists for the date.
type DocumentStore interface {
	GetEntry(ctx context.Context, userID, date string) (*Entry, error)
	PutEntry(ctx context.Context, userID, date string, entry *Entry) error
	DeleteEntry(ctx context.Context, userID, date string) error
	// EntriesInRange returns every entry whose date key falls within
	// [startDate, endDate], keyed by date.
	EntriesInRange(ctx context.Context, userID, startDate, endDate string) (map[string]*Entry, error)
}

// ObjectStore is the object-storage contract: Upload returns the access URL
// for the stored bytes, Delete removes a previously stored object by path.
type ObjectStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, path string) error
}

// ImageResizer downsamples an image before upload; bytes already narrow
// enough come back unchanged.
type ImageResizer interface {
	Resize(data []byte) ([]byte, error)
}
