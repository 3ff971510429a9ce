// Package auth is the identity-provider boundary. The store never derives
// its current user itself; it is populated from session payloads delivered
// through a Provider. The board/task store keeps working when every auth
// call fails.
package auth

import (
	"errors"
	"time"
)

// Session is the payload the provider hands to consumers on sign-in.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Provider is the external identity boundary.
type Provider interface {
	// CurrentSession returns the active session, or nil when signed out.
	CurrentSession() *Session
	// OnSessionChange registers a callback invoked with the new session
	// after every sign-in and with nil after sign-out.
	OnSessionChange(fn func(*Session))
	SignIn(email, password string) error
	SignUp(email, password string) error
	SignOut() error
}

// ErrUserExists is returned by SignUp for an already registered email.
var ErrUserExists = errors.New("auth: user already exists")

// ErrInvalidCredentials is returned by SignIn for an unknown email or a
// wrong password.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")
