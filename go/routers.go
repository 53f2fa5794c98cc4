package adoptserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc returns 501 Not Implemented.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// ApiHandleFunctions groups the per-context API handler bundles.
type ApiHandleFunctions struct {
	PetAPI      PetAPI
	AdoptionAPI AdoptionAPI
	UserAPI     UserAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"RegisterPet",
			http.MethodPost,
			"/v1/pets",
			handleFunctions.PetAPI.RegisterPet,
		},
		{
			"ListPets",
			http.MethodGet,
			"/v1/pets",
			handleFunctions.PetAPI.ListPets,
		},
		{
			"GetPetById",
			http.MethodGet,
			"/v1/pets/:petId",
			handleFunctions.PetAPI.GetPetById,
		},
		{
			"UpdatePet",
			http.MethodPut,
			"/v1/pets/:petId",
			handleFunctions.PetAPI.UpdatePet,
		},
		{
			"DeletePet",
			http.MethodDelete,
			"/v1/pets/:petId",
			handleFunctions.PetAPI.DeletePet,
		},
		{
			"SubmitAdoptionRequest",
			http.MethodPost,
			"/v1/adoptions",
			handleFunctions.AdoptionAPI.SubmitRequest,
		},
		{
			"ListMyAdoptionRequests",
			http.MethodGet,
			"/v1/adoptions/mine",
			handleFunctions.AdoptionAPI.ListMine,
		},
		{
			"ListAdoptionInbox",
			http.MethodGet,
			"/v1/adoptions/inbox",
			handleFunctions.AdoptionAPI.ListInbox,
		},
		{
			"MarkAdoptionRequestsRead",
			http.MethodPost,
			"/v1/adoptions/read",
			handleFunctions.AdoptionAPI.MarkRead,
		},
		{
			"GetAdoptionRequestById",
			http.MethodGet,
			"/v1/adoptions/:requestId",
			handleFunctions.AdoptionAPI.GetRequestById,
		},
		{
			"DecideAdoptionRequest",
			http.MethodPost,
			"/v1/adoptions/:requestId/decision",
			handleFunctions.AdoptionAPI.Decide,
		},
		{
			"RegisterUser",
			http.MethodPost,
			"/v1/users",
			handleFunctions.UserAPI.RegisterUser,
		},
		{
			"GetUserById",
			http.MethodGet,
			"/v1/users/:userId",
			handleFunctions.UserAPI.GetUserById,
		},
		{
			"LoginUser",
			http.MethodPost,
			"/v1/users/login",
			handleFunctions.UserAPI.LoginUser,
		},
		{
			"LogoutUser",
			http.MethodPost,
			"/v1/users/logout",
			handleFunctions.UserAPI.LogoutUser,
		},
	}
}
