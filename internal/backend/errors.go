// Package backend defines the error taxonomy for the remote
// backend-as-a-service every store implementation must map its SDK errors
// onto. Handlers translate these into HTTP statuses; nothing above the store
// layer ever sees a raw SDK error.
package backend

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrAuth covers missing or rejected credentials.
	ErrAuth = errors.New("not authenticated")

	// ErrUnavailable covers transient network or service failures; the user
	// may retry manually, the server never retries on its own.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrPermissionDenied is an authorization failure from the backend,
	// surfaced with its own user-facing message.
	ErrPermissionDenied = errors.New("permission denied")
)

// Classify wraps err with the matching taxonomy sentinel, based on the gRPC
// status code (Firestore) or googleapi HTTP status (Cloud Storage). Errors
// that fit no category are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.Unauthenticated:
			return errors.Join(ErrAuth, err)
		case codes.PermissionDenied:
			return errors.Join(ErrPermissionDenied, err)
		case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Aborted:
			return errors.Join(ErrUnavailable, err)
		}
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusUnauthorized:
			return errors.Join(ErrAuth, err)
		case gerr.Code == http.StatusForbidden:
			return errors.Join(ErrPermissionDenied, err)
		case gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500:
			return errors.Join(ErrUnavailable, err)
		}
	}

	return err
}
