package domain

import (
	"errors"
	"strings"
)

// Status represents the lifecycle state of a pet listing. It is derived from
// the pet's adoption requests and is never set directly by clients.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

// ValidStatus reports whether s names a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted:
		return true
	}
	return false
}

// Size buckets pets for browsing filters.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Gender of the listed pet.
type Gender string

const (
	GenderFemale  Gender = "female"
	GenderMale    Gender = "male"
	GenderUnknown Gender = "unknown"
)

var (
	ErrEmptyName     = errors.New("pet name is required")
	ErrEmptySpecies  = errors.New("pet species is required")
	ErrEmptyPhotos   = errors.New("at least one photo url is required")
	ErrNoOwner       = errors.New("pet owner is required")
	ErrInvalidAge    = errors.New("age must be zero or more months")
	ErrInvalidSize   = errors.New("size must be small, medium, or large")
	ErrInvalidGender = errors.New("gender must be female, male, or unknown")
	ErrInvalidStatus = errors.New("unknown pet status")
)

// Pet represents the listing aggregate managed by the pets bounded context.
type Pet struct {
	ID          int64
	OwnerID     int64
	AdopterID   *int64
	Name        string
	Species     string
	Breed       string
	AgeMonths   int32
	Size        Size
	Gender      Gender
	Description string
	PhotoURLs   []string
	City        string
	Region      string
	Status      Status
}

// NewPet validates the invariants and builds a new Pet listing owned by ownerID.
// Fresh listings always start available.
func NewPet(id, ownerID int64, name, species string, photoURLs []string) (*Pet, error) {
	if ownerID <= 0 {
		return nil, ErrNoOwner
	}
	p := &Pet{ID: id, OwnerID: ownerID, Status: StatusAvailable}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reclassify(species); err != nil {
		return nil, err
	}
	if err := p.ReplacePhotos(photoURLs); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the pet name ensuring the invariant.
func (p *Pet) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reclassify sets the species bucket, normalized to lower case.
func (p *Pet) Reclassify(species string) error {
	species = strings.ToLower(strings.TrimSpace(species))
	if species == "" {
		return ErrEmptySpecies
	}
	p.Species = species
	return nil
}

// ReplacePhotos ensures at least one photo is stored.
func (p *Pet) ReplacePhotos(urls []string) error {
	if len(urls) == 0 {
		return ErrEmptyPhotos
	}
	p.PhotoURLs = append([]string{}, urls...)
	return nil
}

// SetProfile applies the descriptive fields used by browsing filters.
func (p *Pet) SetProfile(breed string, ageMonths int32, size Size, gender Gender) error {
	if ageMonths < 0 {
		return ErrInvalidAge
	}
	if size != "" {
		switch size {
		case SizeSmall, SizeMedium, SizeLarge:
		default:
			return ErrInvalidSize
		}
	}
	if gender == "" {
		gender = GenderUnknown
	}
	switch gender {
	case GenderFemale, GenderMale, GenderUnknown:
	default:
		return ErrInvalidGender
	}
	p.Breed = strings.TrimSpace(breed)
	p.AgeMonths = ageMonths
	p.Size = size
	p.Gender = gender
	return nil
}

// Describe replaces the free-text description.
func (p *Pet) Describe(text string) {
	p.Description = strings.TrimSpace(text)
}

// Relocate updates the listing's address fields.
func (p *Pet) Relocate(city, region string) {
	p.City = strings.TrimSpace(city)
	p.Region = strings.TrimSpace(region)
}

// OwnedBy reports whether userID is the listing owner.
func (p *Pet) OwnedBy(userID int64) bool {
	return p != nil && p.OwnerID == userID
}

// SetAvailability records a derived availability state and, on adoption, the
// adopter. Only the adoption lifecycle writes through this method.
func (p *Pet) SetAvailability(status Status, adopterID *int64) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	p.Status = status
	if status == StatusAdopted {
		p.AdopterID = adopterID
	} else {
		p.AdopterID = nil
	}
	return nil
}
