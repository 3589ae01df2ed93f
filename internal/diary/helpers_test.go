package diary

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
)

// fakeObjects implements ObjectStore in memory, minting download URLs in the
// same shape as the real backend so purge can extract paths back out.
type fakeObjects struct {
	mu       sync.Mutex
	uploads  []string // paths in upload order
	deleted  []string // paths in delete order
	failFrom int      // 1-based upload call number to start failing at; 0 = never
	calls    int
	delErr   error
}

func downloadURLFor(path string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/test-bucket/o/%s?alt=media&token=tok", url.PathEscape(path))
}

func (f *fakeObjects) Upload(_ context.Context, path string, data []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failFrom > 0 && f.calls >= f.failFrom {
		return "", errors.New("upload blew up")
	}
	f.uploads = append(f.uploads, path)
	return downloadURLFor(path), nil
}

func (f *fakeObjects) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, path)
	return f.delErr
}

// passthroughResizer returns bytes unchanged, like the real resizer does for
// images already narrow enough.
type passthroughResizer struct{}

func (passthroughResizer) Resize(data []byte) ([]byte, error) { return data, nil }

// failingResizer rejects everything, standing in for undecodable input.
type failingResizer struct{ err error }

func (r failingResizer) Resize([]byte) ([]byte, error) { return nil, r.err }

// fakeDocs implements DocumentStore over a map keyed by date.
type fakeDocs struct {
	mu      sync.Mutex
	entries map[string]*Entry
	getErr  error
	putErr  error
	delErr  error
	puts    int
	deletes int
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{entries: make(map[string]*Entry)}
}

func (f *fakeDocs) GetEntry(_ context.Context, _, date string) (*Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.entries[date]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeDocs) PutEntry(_ context.Context, _, date string, entry *Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	cp := *entry
	f.entries[date] = &cp
	return nil
}

func (f *fakeDocs) DeleteEntry(_ context.Context, _, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.entries, date)
	return nil
}

func (f *fakeDocs) EntriesInRange(_ context.Context, _, startDate, endDate string) (map[string]*Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make(map[string]*Entry)
	for date, e := range f.entries {
		if date >= startDate && date <= endDate {
			cp := *e
			out[date] = &cp
		}
	}
	return out, nil
}

func intPtr(v int) *int { return &v }

func pendingFile(name string) PendingImage {
	return PendingImage{Filename: name, Data: []byte(name + "-bytes")}
}
