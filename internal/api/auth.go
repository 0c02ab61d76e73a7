// ABOUTME: Authentication endpoints: login, registration, token exchange
// ABOUTME: Typed request/response shapes for the backend auth contract

package api

import (
	"context"
	"net/http"
)

// Credentials is the username/password pair submitted at login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is the credential pair issued on successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest is the account-creation payload. Validation tags mirror
// the checks the backend enforces so obvious mistakes fail before the
// network call.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// User is the created-user representation returned by registration.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Login exchanges credentials for a token pair. The call is
// unauthenticated and never triggers a refresh exchange: a rejection here
// means the credentials are wrong, not that the session expired.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	var pair TokenPair
	if err := c.send(ctx, http.MethodPost, "/token/", creds, &pair, false); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates a new account. Field-level validation errors come back
// as a KindValidation error carrying the field map verbatim.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.send(ctx, http.MethodPost, "/register/", req, &user, false); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyToken checks whether a token is still accepted by the backend.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	payload := map[string]string{"token": token}
	return c.send(ctx, http.MethodPost, "/token/verify/", payload, nil, false)
}
