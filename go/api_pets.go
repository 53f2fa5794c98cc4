package adoptserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	pethttpmapper "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/http/mapper"
	petstypes "github.com/pawhaven/adopt-api/internal/domains/pets/application/types"
	petsports "github.com/pawhaven/adopt-api/internal/domains/pets/ports"
)

// PetAPI wires HTTP transport with the pets bounded context service.
type PetAPI struct {
	service petsports.Service
}

// NewPetAPI creates a PetAPI backed by the provided service.
func NewPetAPI(service petsports.Service) PetAPI {
	return PetAPI{service: service}
}

// Post /v1/pets
// Publish a new listing
func (api *PetAPI) RegisterPet(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if !user.Role.CanPublishListings() {
		respondError(c, http.StatusForbidden, errors.New("role cannot publish listings"))
		return
	}
	var payload pethttpmapper.RegisterPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := pethttpmapper.ToRegisterInput(payload, user.ID)
	saved, err := api.service.Register(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pethttpmapper.FromProjection(saved))
}

// Get /v1/pets
// List listings, optionally filtered by status and species
func (api *PetAPI) ListPets(c *gin.Context) {
	statuses := c.QueryArray("status")
	species := c.Query("species")

	switch {
	case species != "":
		result, err := api.service.FindBySpecies(c.Request.Context(), petstypes.FindPetsBySpeciesInput{Species: species})
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
	case len(statuses) > 0:
		result, err := api.service.FindByStatus(c.Request.Context(), petstypes.FindPetsByStatusInput{Statuses: statuses})
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
	default:
		result, err := api.service.List(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, pethttpmapper.FromProjectionList(result))
	}
}

// Get /v1/pets/:petId
// Find listing by ID
func (api *PetAPI) GetPetById(c *gin.Context) {
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	pet, err := api.service.GetByID(c.Request.Context(), petstypes.PetIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(pet))
}

// Put /v1/pets/:petId
// Update an existing listing (owner only)
func (api *PetAPI) UpdatePet(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	var payload pethttpmapper.MutationPet
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := pethttpmapper.ToUpdateInput(payload, id, user.ID)
	updated, err := api.service.Update(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pethttpmapper.FromProjection(updated))
}

// Delete /v1/pets/:petId
// Remove a listing while it is still available (owner only)
func (api *PetAPI) DeletePet(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "petId")
	if !ok {
		return
	}
	input := petstypes.DeletePetInput{ID: id, ActorID: user.ID}
	if err := api.service.Delete(c.Request.Context(), input); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return 0, false
	}
	return id, true
}
