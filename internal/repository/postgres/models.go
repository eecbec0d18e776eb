package postgres

import (
	"strconv"
	"time"

	"healthcare-portal/internal/domain"
)

type userRow struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:patient"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           strconv.FormatInt(r.ID, 10),
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}

type patientRow struct {
	PatientID                int64  `gorm:"column:patient_id;primaryKey;autoIncrement:false"`
	Age                      int    `gorm:"column:age"`
	Sex                      string `gorm:"column:sex"`
	BloodPressure            int    `gorm:"column:blood_pressure"`
	CholesterolLevel         int    `gorm:"column:cholesterol_level"`
	FastingBloodSugarOver120 string `gorm:"column:fasting_blood_sugar_over_120mg_dl"`
	RestingECG               string `gorm:"column:resting_ecg"`
	ExerciseInducedAngina    string `gorm:"column:exercise_induced_angina"`
}

func (patientRow) TableName() string { return "patient_records" }

func (r patientRow) toDomain() domain.PatientRecord {
	return domain.PatientRecord{
		PatientID:                r.PatientID,
		Age:                      r.Age,
		Sex:                      r.Sex,
		BloodPressure:            r.BloodPressure,
		CholesterolLevel:         r.CholesterolLevel,
		FastingBloodSugarOver120: r.FastingBloodSugarOver120,
		RestingECG:               r.RestingECG,
		ExerciseInducedAngina:    r.ExerciseInducedAngina,
	}
}
