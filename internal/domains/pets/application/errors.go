package application

import (
	"errors"
	"fmt"

	"github.com/pawhaven/adopt-api/internal/domains/pets/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid pet input")
	// ErrForbidden signals the actor is not the listing owner.
	ErrForbidden = errors.New("actor is not the listing owner")
	// ErrListingActive signals the listing has adoption interest and cannot be removed.
	ErrListingActive = errors.New("listing has active adoption interest")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptySpecies) ||
		errors.Is(err, domain.ErrEmptyPhotos) ||
		errors.Is(err, domain.ErrNoOwner) ||
		errors.Is(err, domain.ErrInvalidAge) ||
		errors.Is(err, domain.ErrInvalidSize) ||
		errors.Is(err, domain.ErrInvalidGender) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
