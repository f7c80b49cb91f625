// Package session maps opaque tokens to user ids. The store is an external
// dependency behind an interface so the API layer stays testable and
// horizontally scalable.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNoSession = errors.New("session not found")

// Store holds server-side sessions with a sliding expiry: Get by itself does
// not extend the TTL, Refresh does.
type Store interface {
	Create(ctx context.Context, userID string) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Refresh(ctx context.Context, token string) error
	Destroy(ctx context.Context, token string) error
}

func newToken() string {
	return uuid.New().String()
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}
