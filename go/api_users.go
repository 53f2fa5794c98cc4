package adoptserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/pawhaven/adopt-api/internal/domains/users/adapters/http/mapper"
	usersports "github.com/pawhaven/adopt-api/internal/domains/users/ports"
)

// UserAPI wires HTTP transport with the users bounded context service.
type UserAPI struct {
	service usersports.Service
}

// NewUserAPI creates a UserAPI backed by the provided service.
func NewUserAPI(service usersports.Service) UserAPI {
	return UserAPI{service: service}
}

// Post /v1/users
// Link a verified identity subject to a local account
func (api *UserAPI) RegisterUser(c *gin.Context) {
	var payload userhttpmapper.RegisterUser
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := userhttpmapper.ToDomainUser(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	saved, err := api.service.Register(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userhttpmapper.FromDomainUser(saved))
}

// Get /v1/users/:userId
// Fetch an account by ID
func (api *UserAPI) GetUserById(c *gin.Context) {
	id, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}
	user, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

// Post /v1/users/login
// Exchange a verified subject for a bearer session token
func (api *UserAPI) LoginUser(c *gin.Context) {
	var payload userhttpmapper.Login
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	token, user, err := api.service.Login(c.Request.Context(), payload.Subject)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.LoginResult{
		Token: token,
		User:  userhttpmapper.FromDomainUser(user),
	})
}

// Post /v1/users/logout
// Revoke the caller's session
func (api *UserAPI) LogoutUser(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	if err := api.service.Logout(c.Request.Context(), sessionToken(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
