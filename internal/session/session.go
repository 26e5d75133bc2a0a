// Package session provides the server-side store behind the session cookie.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// Session is the server-side state tied to one cookie.
type Session struct {
	UserID  int    `json:"user_id"`
	Usuario string `json:"usuario"`
	Nombre  string `json:"nombre"`
}

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store persists sessions keyed by opaque ids.
type Store interface {
	// Create stores the session and returns its new id.
	Create(ctx context.Context, s Session) (string, error)
	Get(ctx context.Context, id string) (Session, error)
	Destroy(ctx context.Context, id string) error
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type contextKey struct{}

// NewContext returns ctx carrying the session.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the session placed by the auth gate, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
