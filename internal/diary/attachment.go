package diary

import (
	"context"

	"go.uber.org/zap"

	"github.com/hibi-app/hibi-server/internal/storagepath"
)

// Attachment is one image belonging to an entry: either already stored
// remotely (PersistedImage, addressed by its download URL) or staged locally
// awaiting upload (PendingImage). The two variants are the only
// implementations; switch over them exhaustively.
type Attachment interface {
	isAttachment()
}

// PersistedImage is an image the backend already holds.
type PersistedImage struct {
	URL string
}

// PendingImage is a newly selected image that has no URL until it is uploaded
// during reconciliation. It cannot be addressed for deletion.
type PendingImage struct {
	Filename string
	Data     []byte
}

func (PersistedImage) isAttachment() {}
func (PendingImage) isAttachment()   {}

// AttachmentSet tracks the ordered images of one entry. Persisted items are
// loaded first and therefore always precede items added in the current
// session. The set never exceeds MaxImages items.
type AttachmentSet struct {
	items []Attachment
}

// NewAttachmentSet returns an empty set.
func NewAttachmentSet() *AttachmentSet {
	return &AttachmentSet{}
}

// LoadPersisted replaces the set's content with one persisted item per URL,
// in order. Used when opening an existing entry.
func (s *AttachmentSet) LoadPersisted(urls []string) {
	s.items = s.items[:0]
	for _, u := range urls {
		s.items = append(s.items, PersistedImage{URL: u})
	}
}

// Reset clears all items.
func (s *AttachmentSet) Reset() {
	s.items = nil
}

// Len returns the number of items, persisted and pending.
func (s *AttachmentSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the ordered item list.
func (s *AttachmentSet) Items() []Attachment {
	out := make([]Attachment, len(s.items))
	copy(out, s.items)
	return out
}

// AddPending appends as many of files as fit under the MaxImages ceiling, in
// input order, and reports how many were admitted and how many rejected.
// Overflow is not an error; the caller surfaces the rejected count to the
// user.
func (s *AttachmentSet) AddPending(files []PendingImage) (admitted, rejected int) {
	for _, f := range files {
		if len(s.items) >= MaxImages {
			rejected++
			continue
		}
		s.items = append(s.items, f)
		admitted++
	}
	return admitted, rejected
}

// RemoveAt removes the item at index, whether persisted or pending.
func (s *AttachmentSet) RemoveAt(index int) error {
	if index < 0 || index >= len(s.items) {
		return ErrIndexOutOfRange
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

// Reconcile uploads every pending item and returns the entry's final ordered
// image URL list: the already-persisted URLs followed by the newly uploaded
// ones. Uploads run strictly sequentially in list order; the storage path
// index of the i-th pending item is the persisted count plus i, so the result
// never collides with URLs kept from earlier saves of the same date.
//
// On the first failed upload the remaining uploads are abandoned and an
// *UploadError with the 1-based pending position is returned. Nothing is
// rolled back and the set itself is not mutated, so a retried save
// re-attempts every pending item.
func (s *AttachmentSet) Reconcile(ctx context.Context, objects ObjectStore, resizer ImageResizer, userID, date string) ([]string, error) {
	var persisted []string
	var pending []PendingImage
	for _, item := range s.items {
		switch a := item.(type) {
		case PersistedImage:
			persisted = append(persisted, a.URL)
		case PendingImage:
			pending = append(pending, a)
		}
	}

	urls := make([]string, 0, len(persisted)+len(pending))
	urls = append(urls, persisted...)

	for i, p := range pending {
		data, err := resizer.Resize(p.Data)
		if err != nil {
			return nil, &UploadError{Position: i + 1, Err: err}
		}

		path := storagepath.Build(userID, date, len(persisted)+i)
		url, err := objects.Upload(ctx, path, data, "image/jpeg")
		if err != nil {
			return nil, &UploadError{Position: i + 1, Err: err}
		}
		urls = append(urls, url)
	}

	return urls, nil
}

// Purge deletes the stored object behind every persisted item. Items whose
// URL yields no storage path are skipped, and individual delete failures are
// logged and swallowed: a partially missing image set must never block
// removing the parent entry. Used only during entry deletion.
func (s *AttachmentSet) Purge(ctx context.Context, objects ObjectStore, logger *zap.SugaredLogger) {
	for _, item := range s.items {
		p, ok := item.(PersistedImage)
		if !ok {
			continue
		}

		path := storagepath.Extract(p.URL)
		if path == "" {
			if logger != nil {
				logger.Warnw("skipping image with unparseable URL", "url", p.URL)
			}
			continue
		}

		if err := objects.Delete(ctx, path); err != nil && logger != nil {
			logger.Errorw("failed to delete image object", "path", path, "error", err)
		}
	}
}
