package domain

import (
	"strings"
	"time"
)

// Role is the coarse access-control tag attached to every user.
type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

// ParseRole normalises a submitted role; an empty value falls back to RolePatient.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RolePatient:
		return RolePatient, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// User represents a registered portal account.
// ID is backend assigned: a decimal row id for SQL stores, an ObjectID hex for Mongo.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
