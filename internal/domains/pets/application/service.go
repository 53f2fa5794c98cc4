package application

import (
	"context"

	pettypes "github.com/pawhaven/adopt-api/internal/domains/pets/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
	"github.com/pawhaven/adopt-api/internal/domains/pets/ports"
)

// Service orchestrates the pets bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the pets service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Register publishes a new listing owned by the acting user.
func (s *Service) Register(ctx context.Context, input pettypes.RegisterPetInput) (*pettypes.PetProjection, error) {
	pet, err := domain.NewPet(0, input.OwnerID, input.Name, input.Species, input.PhotoURLs)
	if err != nil {
		return nil, mapError(err)
	}
	if err := pet.SetProfile(input.Breed, input.AgeMonths, domain.Size(input.Size), domain.Gender(input.Gender)); err != nil {
		return nil, mapError(err)
	}
	pet.Describe(input.Description)
	pet.Relocate(input.City, input.Region)
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Update applies a partial mutation to a listing. Only the owner may update,
// and availability is never touched here.
func (s *Service) Update(ctx context.Context, input pettypes.UpdatePetInput) (*pettypes.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	pet := projection.Pet
	if !pet.OwnedBy(input.ActorID) {
		return nil, ErrForbidden
	}
	if err := applyPartialMutation(pet, input); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single pet listing.
func (s *Service) GetByID(ctx context.Context, input pettypes.PetIdentifier) (*pettypes.PetProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// FindByStatus searches listings matching any of the provided statuses.
func (s *Service) FindByStatus(ctx context.Context, input pettypes.FindPetsByStatusInput) ([]*pettypes.PetProjection, error) {
	statuses := make([]domain.Status, 0, len(input.Statuses))
	for _, status := range input.Statuses {
		statuses = append(statuses, domain.Status(status))
	}
	if len(statuses) == 0 {
		statuses = []domain.Status{domain.StatusAvailable}
	}
	for _, status := range statuses {
		if !domain.ValidStatus(status) {
			return nil, mapError(domain.ErrInvalidStatus)
		}
	}
	result, err := s.repo.FindByStatus(ctx, statuses)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// FindBySpecies searches listings of a single species bucket.
func (s *Service) FindBySpecies(ctx context.Context, input pettypes.FindPetsBySpeciesInput) ([]*pettypes.PetProjection, error) {
	result, err := s.repo.FindBySpecies(ctx, input.Species)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// List exposes all listings for admin or relay use cases.
func (s *Service) List(ctx context.Context) ([]*pettypes.PetProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Delete removes a listing. Only the owner may delete, and only while the
// listing is available: pending or adopted status implies live adoption
// requests that must keep their pet reference.
func (s *Service) Delete(ctx context.Context, input pettypes.DeletePetInput) error {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return mapError(err)
	}
	if !projection.Pet.OwnedBy(input.ActorID) {
		return ErrForbidden
	}
	if projection.Pet.Status != domain.StatusAvailable {
		return ErrListingActive
	}
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

func applyPartialMutation(target *domain.Pet, input pettypes.UpdatePetInput) error {
	if input.Name != nil {
		if err := target.Rename(*input.Name); err != nil {
			return err
		}
	}
	if input.PhotoURLs != nil {
		if err := target.ReplacePhotos(*input.PhotoURLs); err != nil {
			return err
		}
	}
	if input.Breed != nil || input.AgeMonths != nil || input.Size != nil || input.Gender != nil {
		breed := target.Breed
		age := target.AgeMonths
		size := target.Size
		gender := target.Gender
		if input.Breed != nil {
			breed = *input.Breed
		}
		if input.AgeMonths != nil {
			age = *input.AgeMonths
		}
		if input.Size != nil {
			size = domain.Size(*input.Size)
		}
		if input.Gender != nil {
			gender = domain.Gender(*input.Gender)
		}
		if err := target.SetProfile(breed, age, size, gender); err != nil {
			return err
		}
	}
	if input.Description != nil {
		target.Describe(*input.Description)
	}
	if input.City != nil || input.Region != nil {
		city := target.City
		region := target.Region
		if input.City != nil {
			city = *input.City
		}
		if input.Region != nil {
			region = *input.Region
		}
		target.Relocate(city, region)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
