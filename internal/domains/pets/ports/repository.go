package ports

import (
	"context"
	"errors"

	pettypes "github.com/pawhaven/adopt-api/internal/domains/pets/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
)

// ErrNotFound signals the addressed pet does not exist.
var ErrNotFound = errors.New("pet not found")

// Repository is the outbound persistence port of the pets bounded context.
type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*pettypes.PetProjection, error)
	GetByID(ctx context.Context, id int64) (*pettypes.PetProjection, error)
	Delete(ctx context.Context, id int64) error
	FindByStatus(ctx context.Context, statuses []domain.Status) ([]*pettypes.PetProjection, error)
	FindBySpecies(ctx context.Context, species string) ([]*pettypes.PetProjection, error)
	List(ctx context.Context) ([]*pettypes.PetProjection, error)
}
