package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"healthcare-portal/internal/domain"
	"healthcare-portal/internal/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, Config(logger.Discard))
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WithArgs("alice", "hash", "admin", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	user := &domain.User{Username: "alice", PasswordHash: "hash", Role: domain.RoleAdmin}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, "7", user.ID)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "hash"})
	assert.ErrorIs(t, err, repository.ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateConnectionFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), &domain.User{Username: "alice", PasswordHash: "hash"})
	assert.ErrorIs(t, err, repository.ErrUnavailable)
	assert.NotErrorIs(t, err, repository.ErrUserExists)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}).
			AddRow(3, "bob", "hash", "patient", created))

	user, err := repo.GetByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "3", user.ID)
	assert.Equal(t, domain.RolePatient, user.Role)
	assert.Equal(t, created, user.CreatedAt)
}

func TestUserRepository_GetByUsernameNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "created_at"}))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPatientRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPatientRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "patient_records" ORDER BY patient_id ASC LIMIT \$1`).
		WillReturnRows(sqlmock.NewRows([]string{
			"patient_id", "age", "sex", "blood_pressure", "cholesterol_level",
			"fasting_blood_sugar_over_120mg_dl", "resting_ecg", "exercise_induced_angina",
		}).
			AddRow(1, 63, "Male", 145, 233, "Yes", "Normal", "No").
			AddRow(2, 41, "Female", 130, 204, "No", "ST-T abnormality", "No"))

	records, err := repo.List(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].PatientID)
	assert.Equal(t, 233, records[0].CholesterolLevel)
	assert.Equal(t, "ST-T abnormality", records[1].RestingECG)
	assert.NoError(t, mock.ExpectationsWereMet())
}
