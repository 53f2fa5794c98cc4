package mapper

import (
	"time"

	petstypes "github.com/pawhaven/adopt-api/internal/domains/pets/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
)

// RegisterPet captures the inbound payload for publishing a listing.
type RegisterPet struct {
	Name        string   `json:"name"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed,omitempty"`
	AgeMonths   int32    `json:"ageMonths,omitempty"`
	Size        string   `json:"size,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Description string   `json:"description,omitempty"`
	City        string   `json:"city,omitempty"`
	Region      string   `json:"region,omitempty"`
	PhotoURLs   []string `json:"photoUrls"`
}

// MutationPet captures update payloads while preserving field presence.
// Status is not accepted: availability is derived from the adoption lifecycle.
type MutationPet struct {
	Name        *string   `json:"name,omitempty"`
	Breed       *string   `json:"breed,omitempty"`
	AgeMonths   *int32    `json:"ageMonths,omitempty"`
	Size        *string   `json:"size,omitempty"`
	Gender      *string   `json:"gender,omitempty"`
	Description *string   `json:"description,omitempty"`
	City        *string   `json:"city,omitempty"`
	Region      *string   `json:"region,omitempty"`
	PhotoURLs   *[]string `json:"photoUrls,omitempty"`
}

// Pet is the HTTP representation of a listing.
type Pet struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"ownerId"`
	AdopterID   *int64    `json:"adopterId,omitempty"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	AgeMonths   int32     `json:"ageMonths,omitempty"`
	Size        string    `json:"size,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Description string    `json:"description,omitempty"`
	City        string    `json:"city,omitempty"`
	Region      string    `json:"region,omitempty"`
	PhotoURLs   []string  `json:"photoUrls"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// ToRegisterInput converts a registration payload into an application input.
func ToRegisterInput(model RegisterPet, ownerID int64) petstypes.RegisterPetInput {
	return petstypes.RegisterPetInput{
		OwnerID:     ownerID,
		Name:        model.Name,
		Species:     model.Species,
		Breed:       model.Breed,
		AgeMonths:   model.AgeMonths,
		Size:        model.Size,
		Gender:      model.Gender,
		Description: model.Description,
		City:        model.City,
		Region:      model.Region,
		PhotoURLs:   append([]string{}, model.PhotoURLs...),
	}
}

// ToUpdateInput converts a mutation payload into an application input while
// preserving field presence.
func ToUpdateInput(model MutationPet, petID, actorID int64) petstypes.UpdatePetInput {
	input := petstypes.UpdatePetInput{ID: petID, ActorID: actorID}
	input.Name = cloneString(model.Name)
	input.Breed = cloneString(model.Breed)
	input.Size = cloneString(model.Size)
	input.Gender = cloneString(model.Gender)
	input.Description = cloneString(model.Description)
	input.City = cloneString(model.City)
	input.Region = cloneString(model.Region)
	if model.AgeMonths != nil {
		age := *model.AgeMonths
		input.AgeMonths = &age
	}
	if model.PhotoURLs != nil {
		urls := append([]string{}, (*model.PhotoURLs)...)
		input.PhotoURLs = &urls
	}
	return input
}

// FromProjection maps a pet projection into its transport representation.
func FromProjection(p *petstypes.PetProjection) Pet {
	if p == nil || p.Pet == nil {
		return Pet{}
	}
	result := FromDomainPet(p.Pet)
	result.CreatedAt = p.Metadata.CreatedAt
	result.UpdatedAt = p.Metadata.UpdatedAt
	return result
}

// FromProjectionList maps a slice of projections.
func FromProjectionList(list []*petstypes.PetProjection) []Pet {
	result := make([]Pet, 0, len(list))
	for _, p := range list {
		if p == nil || p.Pet == nil {
			continue
		}
		result = append(result, FromProjection(p))
	}
	return result
}

// FromDomainPet maps a domain aggregate into a transport Pet.
func FromDomainPet(p *domain.Pet) Pet {
	var adopter *int64
	if p.AdopterID != nil {
		id := *p.AdopterID
		adopter = &id
	}
	return Pet{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		AdopterID:   adopter,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		AgeMonths:   p.AgeMonths,
		Size:        string(p.Size),
		Gender:      string(p.Gender),
		Description: p.Description,
		City:        p.City,
		Region:      p.Region,
		PhotoURLs:   append([]string{}, p.PhotoURLs...),
		Status:      string(p.Status),
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	copy := *value
	return &copy
}
