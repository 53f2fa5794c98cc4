package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
)

func TestSavePreservesDerivedAvailability(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	pet, err := domain.NewPet(0, 1, "Luna", "dog", []string{"http://example.com/a.jpg"})
	require.NoError(t, err)
	saved, err := repo.Save(ctx, pet)
	require.NoError(t, err)

	// A profile edit holds a stale copy while the adoptions side flips
	// availability underneath it.
	stale, err := repo.GetByID(ctx, saved.Pet.ID)
	require.NoError(t, err)
	adopter := int64(7)
	require.NoError(t, repo.UpdateAvailability(ctx, saved.Pet.ID, domain.StatusAdopted, &adopter))

	stale.Pet.Describe("updated description")
	_, err = repo.Save(ctx, stale.Pet)
	require.NoError(t, err)

	current, err := repo.GetByID(ctx, saved.Pet.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusAdopted, current.Pet.Status)
	require.NotNil(t, current.Pet.AdopterID)
	require.Equal(t, adopter, *current.Pet.AdopterID)
	require.Equal(t, "updated description", current.Pet.Description)
}
