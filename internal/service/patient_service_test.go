package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthcare-portal/internal/domain"
)

type recordingPatients struct {
	limit int
}

func (r *recordingPatients) Init(context.Context) error { return nil }

func (r *recordingPatients) List(_ context.Context, limit int) ([]domain.PatientRecord, error) {
	r.limit = limit
	return []domain.PatientRecord{{PatientID: 1}}, nil
}

func TestPatientService_UsesFixedPageSize(t *testing.T) {
	repo := &recordingPatients{}
	records, err := NewPatientService(repo).ListRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, PatientPageSize, repo.limit)
}
