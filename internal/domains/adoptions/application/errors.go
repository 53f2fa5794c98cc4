package application

import (
	"errors"
	"fmt"

	"github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid adoption input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidPetRef) ||
		errors.Is(err, domain.ErrInvalidRequester) ||
		errors.Is(err, domain.ErrMessageTooLong) ||
		errors.Is(err, domain.ErrUnknownOutcome) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	// A request vanishing between lookup and transition means the id was
	// never part of the pet's history.
	if errors.Is(err, domain.ErrRequestMissing) {
		return ports.ErrRequestNotFound
	}
	return err
}
