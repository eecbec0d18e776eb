package repository

import (
	"context"

	"healthcare-portal/internal/domain"
)

// PatientRepository gives read-only access to imported patient records.
type PatientRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context, limit int) ([]domain.PatientRecord, error)
}
