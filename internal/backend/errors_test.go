package backend

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassifyGRPCCodes(t *testing.T) {
	tests := []struct {
		code codes.Code
		want error
	}{
		{codes.Unauthenticated, ErrAuth},
		{codes.PermissionDenied, ErrPermissionDenied},
		{codes.Unavailable, ErrUnavailable},
		{codes.DeadlineExceeded, ErrUnavailable},
		{codes.ResourceExhausted, ErrUnavailable},
		{codes.Aborted, ErrUnavailable},
	}
	for _, tt := range tests {
		err := Classify(status.Error(tt.code, "backend said no"))
		assert.ErrorIs(t, err, tt.want, "code %v", tt.code)
	}
}

func TestClassifyGoogleAPICodes(t *testing.T) {
	tests := []struct {
		httpCode int
		want     error
	}{
		{401, ErrAuth},
		{403, ErrPermissionDenied},
		{429, ErrUnavailable},
		{500, ErrUnavailable},
		{503, ErrUnavailable},
	}
	for _, tt := range tests {
		err := Classify(&googleapi.Error{Code: tt.httpCode})
		assert.ErrorIs(t, err, tt.want, "http %d", tt.httpCode)
	}
}

func TestClassifyPassesThroughUnknownErrors(t *testing.T) {
	assert.NoError(t, Classify(nil))

	plain := errors.New("something else")
	assert.Equal(t, plain, Classify(plain))

	notFound := status.Error(codes.NotFound, "missing")
	assert.Equal(t, notFound, Classify(notFound))
}
