package adoptserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	adoptapp "github.com/pawhaven/adopt-api/internal/domains/adoptions/application"
	adoptdomain "github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	adoptports "github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
	petsapp "github.com/pawhaven/adopt-api/internal/domains/pets/application"
	petsports "github.com/pawhaven/adopt-api/internal/domains/pets/ports"
	usersapp "github.com/pawhaven/adopt-api/internal/domains/users/application"
	usersports "github.com/pawhaven/adopt-api/internal/domains/users/ports"
	apierrors "github.com/pawhaven/adopt-api/internal/shared/errors"
)

// responder renders service errors as RFC 7807 problem documents.
var responder = apierrors.NewChainedResponder("",
	mapAdoptionError,
	mapPetError,
	mapUserError,
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError preserves the existing call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondServiceError routes any service error through the mapper chain.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func mapAdoptionError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, adoptports.ErrPetNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, adoptports.ErrRequestNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, adoptdomain.ErrDuplicateRequest),
		errors.Is(err, adoptports.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, adoptdomain.ErrOwnListing),
		errors.Is(err, adoptdomain.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail(err.Error()), true
	case errors.Is(err, adoptdomain.ErrPetNotAvailable),
		errors.Is(err, adoptdomain.ErrAlreadyDecided):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, adoptapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, adoptports.ErrTransient):
		return apierrors.ErrUnavailable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapPetError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, petsports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, petsapp.ErrForbidden):
		return apierrors.ErrForbidden.WithDetail(err.Error()), true
	case errors.Is(err, petsapp.ErrListingActive):
		return apierrors.ErrUnprocessable.WithDetail(err.Error()), true
	case errors.Is(err, petsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapUserError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, usersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, usersports.ErrDuplicateSubject):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, usersapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail(err.Error()), true
	case errors.Is(err, usersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
