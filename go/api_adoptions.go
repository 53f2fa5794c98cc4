package adoptserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	adopthttpmapper "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/http/mapper"
	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	adoptports "github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
)

// AdoptionAPI wires HTTP transport with the adoption lifecycle service and workflows.
type AdoptionAPI struct {
	service   adoptports.Service
	workflows adoptports.WorkflowOrchestrator
}

// NewAdoptionAPI creates an AdoptionAPI backed by the provided service.
func NewAdoptionAPI(service adoptports.Service, workflows adoptports.WorkflowOrchestrator) AdoptionAPI {
	return AdoptionAPI{service: service, workflows: workflows}
}

// Post /v1/adoptions
// File an adoption request against an available listing
func (api *AdoptionAPI) SubmitRequest(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	if !user.Role.CanAdopt() {
		respondError(c, http.StatusForbidden, errors.New("role cannot file adoption requests"))
		return
	}
	var payload adopthttpmapper.SubmitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := adopthttpmapper.ToSubmitInput(payload, user.ID, c.GetHeader("Idempotency-Key"))
	saved, err := api.submit(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, adopthttpmapper.FromProjection(saved))
}

func (api *AdoptionAPI) submit(ctx context.Context, input adopttypes.SubmitInput) (*adopttypes.RequestProjection, error) {
	if api.workflows != nil {
		return api.workflows.SubmitRequest(ctx, input)
	}
	return api.service.Submit(ctx, input)
}

// Get /v1/adoptions/:requestId
// Fetch one request (requester or pet owner only)
func (api *AdoptionAPI) GetRequestById(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}
	request, err := api.service.GetByID(c.Request.Context(), adopttypes.RequestIdentifier{ID: id, ActorID: user.ID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopthttpmapper.FromProjection(request))
}

// Post /v1/adoptions/:requestId/decision
// Approve or reject a pending request (pet owner only)
func (api *AdoptionAPI) Decide(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}
	var payload adopthttpmapper.Decision
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := adopthttpmapper.ToDecideInput(payload, id, user.ID)
	decided, err := api.service.Decide(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopthttpmapper.FromProjection(decided))
}

// Post /v1/adoptions/read
// Acknowledge decided requests (requester only)
func (api *AdoptionAPI) MarkRead(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	var payload adopthttpmapper.MarkRead
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	input := adopthttpmapper.ToMarkReadInput(payload, user.ID)
	updated, err := api.service.MarkRead(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopthttpmapper.MarkReadResult{Updated: updated})
}

// Get /v1/adoptions/mine
// List the caller's own requests
func (api *AdoptionAPI) ListMine(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := api.service.ListMine(c.Request.Context(), adopttypes.RequesterScope{RequesterID: user.ID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopthttpmapper.FromProjectionList(result))
}

// Get /v1/adoptions/inbox
// List requests filed against the caller's listings
func (api *AdoptionAPI) ListInbox(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	result, err := api.service.ListInbox(c.Request.Context(), adopttypes.OwnerScope{OwnerID: user.ID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, adopthttpmapper.FromProjectionList(result))
}
