package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hibi-app/hibi-server/internal/backend"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key="

// AuthSession is what a successful sign-in returns to the presentation
// layer; the client sends IDToken as a bearer token on every later request.
type AuthSession struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn performs an email/password sign-in through the Identity Toolkit
// REST endpoint. The Admin SDK cannot verify passwords, so this is the same
// call the web SDK makes under the hood.
func (c *Client) SignIn(ctx context.Context, email, password string) (*AuthSession, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signInEndpoint+c.webAPIKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Join(backend.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Join(backend.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: identity toolkit returned %d", backend.ErrUnavailable, resp.StatusCode)
		}
		msg := "sign-in rejected"
		if result.Error != nil {
			msg = result.Error.Message
		}
		return nil, fmt.Errorf("%w: %s", backend.ErrAuth, msg)
	}

	return &AuthSession{
		UID:          result.LocalID,
		Email:        result.Email,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

// VerifyIDToken validates a bearer token and returns the caller's uid.
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := c.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", backend.ErrAuth, err)
	}
	return token.UID, nil
}

// SignOut revokes the user's refresh tokens, invalidating their sessions.
func (c *Client) SignOut(ctx context.Context, uid string) error {
	if err := c.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		return backend.Classify(err)
	}
	return nil
}
