package firebase

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hibi-app/hibi-server/internal/backend"
	"github.com/hibi-app/hibi-server/internal/diary"
)

// Entries live at users/{uid}/entries/{date}, the date string being the
// document ID, exactly as the web client stored them.
func (c *Client) entries(userID string) *firestore.CollectionRef {
	return c.fs.Collection("users").Doc(userID).Collection("entries")
}

// GetEntry returns the entry for date, or (nil, nil) when none exists.
func (c *Client) GetEntry(ctx context.Context, userID, date string) (*diary.Entry, error) {
	snap, err := c.entries(userID).Doc(date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, backend.Classify(err)
	}

	var entry diary.Entry
	if err := snap.DataTo(&entry); err != nil {
		return nil, fmt.Errorf("failed to decode entry %s: %w", date, err)
	}
	return &entry, nil
}

// PutEntry writes the entry document with full overwrite semantics; there is
// no partial-field update.
func (c *Client) PutEntry(ctx context.Context, userID, date string, entry *diary.Entry) error {
	if _, err := c.entries(userID).Doc(date).Set(ctx, entry); err != nil {
		return backend.Classify(err)
	}
	return nil
}

// DeleteEntry removes the entry document for date.
func (c *Client) DeleteEntry(ctx context.Context, userID, date string) error {
	if _, err := c.entries(userID).Doc(date).Delete(ctx); err != nil {
		return backend.Classify(err)
	}
	return nil
}

// EntriesInRange returns every entry whose date key lies within
// [startDate, endDate], keyed by date. The comparison runs over the document
// ID, which is the lexicographically ordered date string.
func (c *Client) EntriesInRange(ctx context.Context, userID, startDate, endDate string) (map[string]*diary.Entry, error) {
	query := c.entries(userID).
		Where(firestore.DocumentID, ">=", startDate).
		Where(firestore.DocumentID, "<=", endDate)

	entries := make(map[string]*diary.Entry)
	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, backend.Classify(err)
		}

		var entry diary.Entry
		if err := snap.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode entry %s: %w", snap.Ref.ID, err)
		}
		entries[snap.Ref.ID] = &entry
	}
	return entries, nil
}
