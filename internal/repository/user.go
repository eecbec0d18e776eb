package repository

import (
	"context"
	"errors"

	"healthcare-portal/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no stored entity.
	ErrNotFound = errors.New("not found")
	// ErrUserExists is returned when an insert violates the username uniqueness constraint.
	ErrUserExists = errors.New("user already exists")
	// ErrUnavailable wraps failures to reach the backing store.
	ErrUnavailable = errors.New("store unavailable")
)

// UserRepository defines persistence operations for User entities.
// Every backend enforces username uniqueness and stores the same field shape.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Ping(ctx context.Context) error
}
