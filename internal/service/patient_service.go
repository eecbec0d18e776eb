package service

import (
	"context"

	"healthcare-portal/internal/domain"
	"healthcare-portal/internal/repository"
)

// PatientPageSize caps the admin listing.
const PatientPageSize = 50

// PatientService exposes the read-only patient report.
type PatientService interface {
	ListRecords(ctx context.Context) ([]domain.PatientRecord, error)
}

type patientService struct {
	patients repository.PatientRepository
}

func NewPatientService(patients repository.PatientRepository) PatientService {
	return &patientService{patients: patients}
}

func (s *patientService) ListRecords(ctx context.Context) ([]domain.PatientRecord, error) {
	return s.patients.List(ctx, PatientPageSize)
}
