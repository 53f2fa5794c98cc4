package ports

import (
	"context"

	pettypes "github.com/pawhaven/adopt-api/internal/domains/pets/application/types"
)

// Service defines the pets use cases exposed to adapters (inbound/driving port).
type Service interface {
	Register(ctx context.Context, input pettypes.RegisterPetInput) (*pettypes.PetProjection, error)
	Update(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error)
	GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error)
	FindByStatus(ctx context.Context, input pettypes.FindPetsByStatusInput) ([]*pettypes.PetProjection, error)
	FindBySpecies(ctx context.Context, input pettypes.FindPetsBySpeciesInput) ([]*pettypes.PetProjection, error)
	List(ctx context.Context) ([]*pettypes.PetProjection, error)
	Delete(ctx context.Context, input pettypes.DeletePetInput) error
}
