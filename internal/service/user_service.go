package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/jellydator/validation"

	"healthcare-portal/internal/domain"
	"healthcare-portal/internal/repository"
)

// hasDigit accepts any Unicode decimal digit, not only ASCII 0-9.
var hasDigit = validation.By(func(value any) error {
	password, _ := value.(string)
	for _, r := range password {
		if unicode.IsDigit(r) {
			return nil
		}
	}
	return errors.New("must contain a digit")
})

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(encoded, password string) bool
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	hasher PasswordHasher

	// verified against when the username is unknown
	dummyHash string
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher) UserService {
	dummyHash, _ := hasher.Hash("dummy-password-0")
	return &userService{
		users:     users,
		hasher:    hasher,
		dummyHash: dummyHash,
	}
}

type registration struct {
	Username string
	Password string
}

func (r registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

func (s *userService) Register(ctx context.Context, username, password, role string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	if err := (registration{Username: username, Password: password}).Validate(); err != nil {
		return nil, &ValidationError{Message: MsgCredentialsRequired}
	}
	if err := validation.Validate(password,
		validation.RuneLength(8, 0),
		hasDigit,
	); err != nil {
		return nil, &ValidationError{Message: MsgPasswordPolicy}
	}
	parsedRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, &ValidationError{Message: MsgInvalidRole}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         parsedRole,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// burn a verification so unknown names cost the same as wrong passwords
			s.hasher.Verify(s.dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
