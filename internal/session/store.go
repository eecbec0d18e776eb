package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by a Store when the id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Data is the server-side state of one session.
type Data struct {
	Username string   `json:"username,omitempty"`
	Role     string   `json:"role,omitempty"`
	Flashes  []string `json:"flashes,omitempty"`
}

// Store persists session data by id.
type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
