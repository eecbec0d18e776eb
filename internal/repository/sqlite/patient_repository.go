package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"healthcare-portal/internal/domain"
	"healthcare-portal/internal/repository"
)

// The import job owns this table; Init only guarantees it exists so the listing can run on an empty database.
const createPatientRecordsTable = `
CREATE TABLE IF NOT EXISTS patient_records (
	patient_id INTEGER PRIMARY KEY,
	age INTEGER NOT NULL,
	sex TEXT NOT NULL,
	blood_pressure INTEGER NOT NULL,
	cholesterol_level INTEGER NOT NULL,
	fasting_blood_sugar_over_120mg_dl TEXT NOT NULL,
	resting_ecg TEXT NOT NULL,
	exercise_induced_angina TEXT NOT NULL
);
`

type PatientRepository struct {
	db *sql.DB
}

func NewPatientRepository(db *sql.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

var _ repository.PatientRepository = (*PatientRepository)(nil)

func (r *PatientRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPatientRecordsTable); err != nil {
		return fmt.Errorf("create patient_records table: %w", err)
	}
	return nil
}

func (r *PatientRepository) List(ctx context.Context, limit int) ([]domain.PatientRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT patient_id, age, sex, blood_pressure, cholesterol_level,
	fasting_blood_sugar_over_120mg_dl, resting_ecg, exercise_induced_angina
FROM patient_records
ORDER BY patient_id ASC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query patient records: %w: %w", repository.ErrUnavailable, err)
	}
	defer rows.Close()

	var records []domain.PatientRecord
	for rows.Next() {
		var (
			rec                             domain.PatientRecord
			age, bloodPressure, cholesterol sql.NullInt64
			sex, fastingSugar, ecg, angina  sql.NullString
		)
		if err := rows.Scan(
			&rec.PatientID,
			&age,
			&sex,
			&bloodPressure,
			&cholesterol,
			&fastingSugar,
			&ecg,
			&angina,
		); err != nil {
			return nil, fmt.Errorf("scan patient record: %w", err)
		}
		rec.Age = int(age.Int64)
		rec.Sex = sex.String
		rec.BloodPressure = int(bloodPressure.Int64)
		rec.CholesterolLevel = int(cholesterol.Int64)
		rec.FastingBloodSugarOver120 = fastingSugar.String
		rec.RestingECG = ecg.String
		rec.ExerciseInducedAngina = angina.String
		records = append(records, rec)
	}

	return records, rows.Err()
}
