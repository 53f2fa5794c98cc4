//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	petspostgres "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/persistence/postgres"
	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
	"github.com/pawhaven/adopt-api/internal/domains/pets/ports"
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

func newPet(t *testing.T, ownerID int64, name string) *domain.Pet {
	t.Helper()
	pet, err := domain.NewPet(0, ownerID, name, "dog", []string{"http://example.com/photo.jpg"})
	require.NoError(t, err)
	return pet
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	pet := newPet(t, 1, "Buddy")
	require.NoError(t, pet.SetProfile("mix", 24, domain.SizeMedium, domain.GenderMale))
	pet.Describe("gentle with kids")
	pet.Relocate("Lisbon", "Lisboa")

	projection, err := repo.Save(ctx, pet)
	require.NoError(t, err)
	assert.NotNil(t, projection)
	assert.NotZero(t, projection.Pet.ID)
	assert.Equal(t, "Buddy", projection.Pet.Name)
	assert.False(t, projection.Metadata.CreatedAt.IsZero())
	assert.False(t, projection.Metadata.UpdatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, projection.Pet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buddy", retrieved.Pet.Name)
	assert.Equal(t, domain.StatusAvailable, retrieved.Pet.Status)
	assert.Equal(t, int64(1), retrieved.Pet.OwnerID)
	assert.Equal(t, "mix", retrieved.Pet.Breed)
	assert.Equal(t, []string{"http://example.com/photo.jpg"}, retrieved.Pet.PhotoURLs)
}

func TestPostgresRepository_FindByStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	statuses := []domain.Status{
		domain.StatusAvailable,
		domain.StatusPending,
		domain.StatusAdopted,
		domain.StatusAvailable,
	}
	for i, status := range statuses {
		pet := newPet(t, 1, fmt.Sprintf("Pet %d", i))
		saved, err := repo.Save(ctx, pet)
		require.NoError(t, err)
		if status != domain.StatusAvailable {
			err = db.Exec("UPDATE pets SET status = ? WHERE id = ?", string(status), saved.Pet.ID).Error
			require.NoError(t, err)
		}
	}

	available, err := repo.FindByStatus(ctx, []domain.Status{domain.StatusAvailable})
	require.NoError(t, err)
	assert.Len(t, available, 2)

	decidedEither, err := repo.FindByStatus(ctx, []domain.Status{domain.StatusPending, domain.StatusAdopted})
	require.NoError(t, err)
	assert.Len(t, decidedEither, 2)
}

func TestPostgresRepository_FindBySpecies(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	dog := newPet(t, 1, "Rex")
	_, err := repo.Save(ctx, dog)
	require.NoError(t, err)

	cat, err := domain.NewPet(0, 1, "Mia", "cat", []string{"http://example.com/mia.jpg"})
	require.NoError(t, err)
	_, err = repo.Save(ctx, cat)
	require.NoError(t, err)

	cats, err := repo.FindBySpecies(ctx, "cat")
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Equal(t, "Mia", cats[0].Pet.Name)
}

func TestPostgresRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, newPet(t, 1, "ToDelete"))
	require.NoError(t, err)

	err = repo.Delete(ctx, saved.Pet.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, saved.Pet.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, saved.Pet.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_List(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := repo.Save(ctx, newPet(t, 1, fmt.Sprintf("Pet %d", i)))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestPostgresRepository_Update(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := petspostgres.NewRepository(db)
	ctx := context.Background()

	pet := newPet(t, 1, "Original Name")
	saved, err := repo.Save(ctx, pet)
	require.NoError(t, err)
	originalCreatedAt := saved.Metadata.CreatedAt

	// Sleep briefly to ensure different timestamps
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, pet.Rename("Updated Name"))
	pet.Relocate("Porto", "Norte")
	updated, err := repo.Save(ctx, pet)
	require.NoError(t, err)

	assert.Equal(t, "Updated Name", updated.Pet.Name)
	assert.Equal(t, "Porto", updated.Pet.City)
	assert.Equal(t, originalCreatedAt.Unix(), updated.Metadata.CreatedAt.Unix())
	assert.True(t, updated.Metadata.UpdatedAt.After(originalCreatedAt))
}
