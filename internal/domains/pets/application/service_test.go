package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawhaven/adopt-api/internal/domains/pets/adapters/memory"
	pettypes "github.com/pawhaven/adopt-api/internal/domains/pets/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
	"github.com/pawhaven/adopt-api/internal/domains/pets/ports"
)

func registerInput(ownerID int64) pettypes.RegisterPetInput {
	return pettypes.RegisterPetInput{
		OwnerID:   ownerID,
		Name:      "Luna",
		Species:   "Dog",
		Breed:     "mix",
		AgeMonths: 18,
		Size:      "medium",
		Gender:    "female",
		City:      "Lisbon",
		Region:    "Lisboa",
		PhotoURLs: []string{"https://example.com/luna.jpg"},
	}
}

func TestRegister(t *testing.T) {
	repo := memory.NewRepository()
	service := NewService(repo)

	projection, err := service.Register(context.Background(), registerInput(1))
	require.NoError(t, err)
	require.NotZero(t, projection.Pet.ID)
	require.Equal(t, domain.StatusAvailable, projection.Pet.Status)
	require.Equal(t, "dog", projection.Pet.Species, "species is normalized to lower case")
}

func TestRegisterValidation(t *testing.T) {
	service := NewService(memory.NewRepository())

	tests := []struct {
		name   string
		mutate func(*pettypes.RegisterPetInput)
		want   error
	}{
		{"missing owner", func(in *pettypes.RegisterPetInput) { in.OwnerID = 0 }, domain.ErrNoOwner},
		{"missing name", func(in *pettypes.RegisterPetInput) { in.Name = "  " }, domain.ErrEmptyName},
		{"missing species", func(in *pettypes.RegisterPetInput) { in.Species = "" }, domain.ErrEmptySpecies},
		{"missing photos", func(in *pettypes.RegisterPetInput) { in.PhotoURLs = nil }, domain.ErrEmptyPhotos},
		{"negative age", func(in *pettypes.RegisterPetInput) { in.AgeMonths = -1 }, domain.ErrInvalidAge},
		{"bad size", func(in *pettypes.RegisterPetInput) { in.Size = "huge" }, domain.ErrInvalidSize},
		{"bad gender", func(in *pettypes.RegisterPetInput) { in.Gender = "other" }, domain.ErrInvalidGender},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := registerInput(1)
			tc.mutate(&input)
			_, err := service.Register(context.Background(), input)
			require.ErrorIs(t, err, ErrInvalidInput)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateAppliesPartialMutation(t *testing.T) {
	service := NewService(memory.NewRepository())
	created, err := service.Register(context.Background(), registerInput(1))
	require.NoError(t, err)

	name := "Nova"
	city := "Porto"
	updated, err := service.Update(context.Background(), pettypes.UpdatePetInput{
		ID:      created.Pet.ID,
		ActorID: 1,
		Name:    &name,
		City:    &city,
	})
	require.NoError(t, err)
	require.Equal(t, "Nova", updated.Pet.Name)
	require.Equal(t, "Porto", updated.Pet.City)
	// Untouched fields survive the partial update.
	require.Equal(t, "mix", updated.Pet.Breed)
	require.Equal(t, "Lisboa", updated.Pet.Region)
}

func TestUpdateRequiresOwner(t *testing.T) {
	service := NewService(memory.NewRepository())
	created, err := service.Register(context.Background(), registerInput(1))
	require.NoError(t, err)

	name := "Nova"
	_, err = service.Update(context.Background(), pettypes.UpdatePetInput{
		ID:      created.Pet.ID,
		ActorID: 2,
		Name:    &name,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateUnknownPet(t *testing.T) {
	service := NewService(memory.NewRepository())
	_, err := service.Update(context.Background(), pettypes.UpdatePetInput{ID: 404, ActorID: 1})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestFindByStatus(t *testing.T) {
	repo := memory.NewRepository()
	service := NewService(repo)
	created, err := service.Register(context.Background(), registerInput(1))
	require.NoError(t, err)
	_, err = service.Register(context.Background(), registerInput(2))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateAvailability(context.Background(), created.Pet.ID, domain.StatusPending, nil))

	// Defaults to available when no status is requested.
	result, err := service.FindByStatus(context.Background(), pettypes.FindPetsByStatusInput{})
	require.NoError(t, err)
	require.Len(t, result, 1)

	result, err = service.FindByStatus(context.Background(), pettypes.FindPetsByStatusInput{
		Statuses: []string{"available", "pending"},
	})
	require.NoError(t, err)
	require.Len(t, result, 2)

	_, err = service.FindByStatus(context.Background(), pettypes.FindPetsByStatusInput{Statuses: []string{"sold"}})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFindBySpecies(t *testing.T) {
	service := NewService(memory.NewRepository())
	_, err := service.Register(context.Background(), registerInput(1))
	require.NoError(t, err)
	catInput := registerInput(1)
	catInput.Species = "cat"
	_, err = service.Register(context.Background(), catInput)
	require.NoError(t, err)

	result, err := service.FindBySpecies(context.Background(), pettypes.FindPetsBySpeciesInput{Species: "cat"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Equal(t, "cat", result[0].Pet.Species)
}

func TestDelete(t *testing.T) {
	service := NewService(memory.NewRepository())
	created, err := service.Register(context.Background(), registerInput(1))
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), pettypes.DeletePetInput{ID: created.Pet.ID, ActorID: 1}))
	_, err = service.GetByID(context.Background(), pettypes.PetIdentifier{ID: created.Pet.ID})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeleteRequiresOwner(t *testing.T) {
	service := NewService(memory.NewRepository())
	created, err := service.Register(context.Background(), registerInput(1))
	require.NoError(t, err)

	err = service.Delete(context.Background(), pettypes.DeletePetInput{ID: created.Pet.ID, ActorID: 2})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteBlockedWhileAdoptionActive(t *testing.T) {
	repo := memory.NewRepository()
	service := NewService(repo)
	created, err := service.Register(context.Background(), registerInput(1))
	require.NoError(t, err)
	require.NoError(t, repo.UpdateAvailability(context.Background(), created.Pet.ID, domain.StatusPending, nil))

	err = service.Delete(context.Background(), pettypes.DeletePetInput{ID: created.Pet.ID, ActorID: 1})
	require.ErrorIs(t, err, ErrListingActive)
}
