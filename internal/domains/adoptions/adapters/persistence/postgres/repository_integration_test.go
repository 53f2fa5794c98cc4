//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	adoptpostgres "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/persistence/postgres"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
	petspostgres "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/persistence/postgres"
	petsdomain "github.com/pawhaven/adopt-api/internal/domains/pets/domain"
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

func seedPet(t *testing.T, db *gorm.DB, ownerID int64) int64 {
	t.Helper()
	pet, err := petsdomain.NewPet(0, ownerID, "Luna", "dog", []string{"http://example.com/luna.jpg"})
	require.NoError(t, err)
	projection, err := petspostgres.NewRepository(db).Save(context.Background(), pet)
	require.NoError(t, err)
	return projection.Pet.ID
}

func submit(t *testing.T, repo *adoptpostgres.Repository, petID, requesterID int64) int64 {
	t.Helper()
	projection, err := repo.TransitionPet(context.Background(), petID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Submit(view, requesterID, "please")
	})
	require.NoError(t, err)
	return projection.Request.ID
}

func petStatus(t *testing.T, db *gorm.DB, petID int64) string {
	t.Helper()
	var status string
	require.NoError(t, db.Raw("SELECT status FROM pets WHERE id = ?", petID).Scan(&status).Error)
	return status
}

func TestPostgresRepository_SubmitTransition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptpostgres.NewRepository(db)
	ctx := context.Background()
	petID := seedPet(t, db, 1)

	requestID := submit(t, repo, petID, 2)

	projection, err := repo.GetByID(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, projection.Request.Status)
	assert.Equal(t, int64(1), projection.PetOwnerID)
	assert.Equal(t, "pending", petStatus(t, db, petID))

	// A second requester may still file while the pet is pending.
	second, err := repo.TransitionPet(ctx, petID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Submit(view, 3, "me too")
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, second.Request.Status)
	assert.Equal(t, "pending", petStatus(t, db, petID))

	// The same requester cannot hold two pending requests.
	_, err = repo.TransitionPet(ctx, petID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Submit(view, 2, "again")
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateRequest)
}

func TestPostgresRepository_SubmitUnknownPet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptpostgres.NewRepository(db)
	_, err := repo.TransitionPet(context.Background(), 404, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Submit(view, 2, "")
	})
	assert.ErrorIs(t, err, ports.ErrPetNotFound)
}

func TestPostgresRepository_ApprovalCascades(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptpostgres.NewRepository(db)
	ctx := context.Background()
	petID := seedPet(t, db, 1)

	winnerID := submit(t, repo, petID, 2)
	submit(t, repo, petID, 3)

	decided, err := repo.TransitionRequest(ctx, winnerID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Decide(view, winnerID, 1, domain.StatusApproved)
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, decided.Request.Status)
	assert.Equal(t, "adopted", petStatus(t, db, petID))

	var adopterID *int64
	require.NoError(t, db.Raw("SELECT adopter_id FROM pets WHERE id = ?", petID).Scan(&adopterID).Error)
	require.NotNil(t, adopterID)
	assert.Equal(t, int64(2), *adopterID)

	var rejected int64
	require.NoError(t, db.Raw(
		"SELECT COUNT(*) FROM adoption_requests WHERE pet_id = ? AND status = 'rejected'", petID,
	).Scan(&rejected).Error)
	assert.Equal(t, int64(1), rejected)

	_, err = repo.TransitionPet(ctx, petID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Submit(view, 4, "too late")
	})
	assert.ErrorIs(t, err, domain.ErrPetNotAvailable)
}

func TestPostgresRepository_RejectionFreesPet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptpostgres.NewRepository(db)
	ctx := context.Background()
	petID := seedPet(t, db, 1)
	requestID := submit(t, repo, petID, 2)

	_, err := repo.TransitionRequest(ctx, requestID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Decide(view, requestID, 1, domain.StatusRejected)
	})
	require.NoError(t, err)
	assert.Equal(t, "available", petStatus(t, db, petID))

	// Deciding the same request again hits the terminal-state guard.
	_, err = repo.TransitionRequest(ctx, requestID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Decide(view, requestID, 1, domain.StatusApproved)
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
}

func TestPostgresRepository_ConcurrentDecide(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptpostgres.NewRepository(db)
	ctx := context.Background()
	petID := seedPet(t, db, 1)
	requestID := submit(t, repo, petID, 2)

	// Two racing approvals serialize on the pet row lock; exactly one wins.
	const racers = 4
	errs := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.TransitionRequest(ctx, requestID, func(view domain.PetView) (*domain.ChangeSet, error) {
				return domain.Decide(view, requestID, 1, domain.StatusApproved)
			})
			errs[i] = err
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, "adopted", petStatus(t, db, petID))
}

func TestPostgresRepository_ListsAndMarkRead(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptpostgres.NewRepository(db)
	ctx := context.Background()
	petID := seedPet(t, db, 1)
	requestID := submit(t, repo, petID, 2)

	mine, err := repo.ListByRequester(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	inbox, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, inbox, 1)

	_, err = repo.TransitionRequest(ctx, requestID, func(view domain.PetView) (*domain.ChangeSet, error) {
		return domain.Decide(view, requestID, 1, domain.StatusRejected)
	})
	require.NoError(t, err)

	unread, err := repo.ListUnreadDecided(ctx, 10)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, requestID, unread[0].Request.ID)

	// Wrong requester marks nothing.
	changed, err := repo.MarkRead(ctx, []int64{requestID}, 99)
	require.NoError(t, err)
	assert.Zero(t, changed)

	changed, err = repo.MarkRead(ctx, []int64{requestID}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changed)

	unread, err = repo.ListUnreadDecided(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, unread)

	// Marking again changes nothing.
	changed, err = repo.MarkRead(ctx, []int64{requestID}, 2)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestPostgresIdempotencyStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := adoptpostgres.NewIdempotencyStore(db)
	ctx := context.Background()

	record, err := store.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, record)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "key-1", RequestHash: "abc", RequestID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.RequestID)

	// Same payload replays the stored record.
	replayed, err := store.Save(ctx, ports.IdempotencyRecord{Key: "key-1", RequestHash: "abc", RequestID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), replayed.RequestID)

	// A different payload under the same key conflicts.
	_, err = store.Save(ctx, ports.IdempotencyRecord{Key: "key-1", RequestHash: "xyz", RequestID: 8})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}
