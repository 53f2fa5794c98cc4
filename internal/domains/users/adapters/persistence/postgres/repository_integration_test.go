//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	userspostgres "github.com/pawhaven/adopt-api/internal/domains/users/adapters/persistence/postgres"
	"github.com/pawhaven/adopt-api/internal/domains/users/domain"
	"github.com/pawhaven/adopt-api/internal/domains/users/ports"
	"github.com/pawhaven/adopt-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("adopt_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newUser(t *testing.T, subject, displayName string, role domain.Role) *domain.User {
	t.Helper()
	user, err := domain.NewUser(0, subject, displayName, role)
	require.NoError(t, err)
	return user
}

func TestPostgresUserRepository_SaveAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := userspostgres.NewRepository(db)
	ctx := context.Background()

	user := newUser(t, "auth0|alice", "Alice", domain.RoleRehomer)
	require.NoError(t, user.SetEmail("alice@example.com"))

	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, "auth0|alice", saved.Subject)
	assert.Equal(t, domain.RoleRehomer, saved.Role)

	byID, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.DisplayName)

	bySubject, err := repo.GetBySubject(ctx, "auth0|alice")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, bySubject.ID)

	_, err = repo.GetBySubject(ctx, "auth0|nobody")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresUserRepository_DuplicateSubjectConflicts(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := userspostgres.NewRepository(db)
	ctx := context.Background()

	first, err := repo.Save(ctx, newUser(t, "auth0|dup", "Original", domain.RoleAdopter))
	require.NoError(t, err)

	// A second registration of the same subject must conflict, not mutate
	// the linked account.
	_, err = repo.Save(ctx, newUser(t, "auth0|dup", "Impostor", domain.RoleAdmin))
	require.ErrorIs(t, err, ports.ErrDuplicateSubject)

	kept, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", kept.DisplayName)
	assert.Equal(t, domain.RoleAdopter, kept.Role)
}
