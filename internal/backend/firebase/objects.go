package firebase

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/hibi-app/hibi-server/internal/backend"
)

// Upload stores data at path and returns a Firebase-style download URL. The
// URL embeds a fresh download token minted here, the same scheme the web SDK
// relies on, so existing clients can fetch the bytes without GCS signing.
func (c *Client) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	token := uuid.New().String()

	w := c.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", backend.Classify(err)
	}
	if err := w.Close(); err != nil {
		return "", backend.Classify(err)
	}

	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		c.bucketName, url.PathEscape(path), token), nil
}

// Delete removes the object at path. An object that is already gone counts
// as deleted.
func (c *Client) Delete(ctx context.Context, path string) error {
	err := c.bucket.Object(path).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return backend.Classify(err)
	}
	return nil
}
