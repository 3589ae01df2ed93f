// Package firebase implements the diary's backend contract on Firebase:
// Auth for identity, Firestore for entry documents and Cloud Storage for
// image objects. All errors leaving this package are classified with the
// backend taxonomy.
package firebase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/hibi-app/hibi-server/internal/config"
)

// Client wraps the Firebase service handles the server needs.
type Client struct {
	app        *firebase.App
	authClient *auth.Client
	fs         *firestore.Client
	bucket     *storage.BucketHandle
	bucketName string

	webAPIKey string
	http      *http.Client
}

// New initializes the Firebase app and its Auth, Firestore and Storage
// clients. With FIREBASE_SERVICE_ACCOUNT_PATH unset it falls back to default
// credentials, which is what a Google Cloud deployment uses.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	fbConfig := &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.StorageBucket,
	}

	var app *firebase.App
	var err error
	if cfg.FirebaseServiceAccountPath != "" {
		opt := option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
		app, err = firebase.NewApp(ctx, fbConfig, opt)
	} else {
		app, err = firebase.NewApp(ctx, fbConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Storage client: %w", err)
	}
	bucket, err := storageClient.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to get default storage bucket: %w", err)
	}

	return &Client{
		app:        app,
		authClient: authClient,
		fs:         fs,
		bucket:     bucket,
		bucketName: cfg.StorageBucket,
		webAPIKey:  cfg.FirebaseWebAPIKey,
		http:       &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Close releases the Firestore connection.
func (c *Client) Close() error {
	return c.fs.Close()
}
