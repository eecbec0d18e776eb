package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthcare-portal/internal/domain"
	"healthcare-portal/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newUserRepo(t *testing.T) *UserRepository {
	t.Helper()
	repo := NewUserRepository(openTestDB(t))
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	user := &domain.User{Username: "alice", PasswordHash: "hash", Role: domain.RoleAdmin}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Equal(t, domain.RoleAdmin, got.Role)
}

func TestUserRepository_DefaultRole(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "bob", PasswordHash: "hash"}))

	got, err := repo.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.RolePatient, got.Role)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := newUserRepo(t)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateKeepsOriginal(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Username: "carol", PasswordHash: "first"}))
	err := repo.Create(ctx, &domain.User{Username: "carol", PasswordHash: "second", Role: domain.RoleAdmin})
	require.ErrorIs(t, err, repository.ErrUserExists)

	got, err := repo.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "first", got.PasswordHash)
	assert.Equal(t, domain.RolePatient, got.Role)
}

func TestUserRepository_ConcurrentDuplicates(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		duplicate int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Create(ctx, &domain.User{Username: "dave", PasswordHash: fmt.Sprintf("h%d", i)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case assert.ErrorIs(t, err, repository.ErrUserExists):
				duplicate++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, duplicate)

	var count int
	require.NoError(t, repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, "dave").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestUserRepository_Ping(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	require.NoError(t, repo.Ping(context.Background()))

	require.NoError(t, db.Close())
	assert.ErrorIs(t, repo.Ping(context.Background()), repository.ErrUnavailable)
}

func TestPatientRepository_ListCapsAndOrders(t *testing.T) {
	db := openTestDB(t)
	repo := NewPatientRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	for id := 60; id >= 1; id-- {
		_, err := db.ExecContext(ctx, `
INSERT INTO patient_records (patient_id, age, sex, blood_pressure, cholesterol_level,
	fasting_blood_sugar_over_120mg_dl, resting_ecg, exercise_induced_angina)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, id, 40+id%30, "Male", 120, 200, "No", "Normal", "Yes")
		require.NoError(t, err)
	}

	records, err := repo.List(ctx, 50)
	require.NoError(t, err)
	require.Len(t, records, 50)
	assert.Equal(t, int64(1), records[0].PatientID)
	assert.Equal(t, int64(50), records[49].PatientID)
	assert.Equal(t, "Male", records[0].Sex)
	assert.Equal(t, "Yes", records[0].ExerciseInducedAngina)
}

func TestPatientRepository_EmptyTable(t *testing.T) {
	repo := NewPatientRepository(openTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Init(ctx))

	records, err := repo.List(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, records)
}
