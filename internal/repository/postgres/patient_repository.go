package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"healthcare-portal/internal/domain"
	"healthcare-portal/internal/repository"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

var _ repository.PatientRepository = (*PatientRepository)(nil)

func (r *PatientRepository) Init(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&patientRow{}); err != nil {
		return fmt.Errorf("migrate patient_records table: %w", err)
	}
	return nil
}

func (r *PatientRepository) List(ctx context.Context, limit int) ([]domain.PatientRecord, error) {
	var rows []patientRow
	err := r.db.WithContext(ctx).Order("patient_id ASC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query patient records: %w: %w", repository.ErrUnavailable, err)
	}

	records := make([]domain.PatientRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].toDomain()
	}
	return records, nil
}
