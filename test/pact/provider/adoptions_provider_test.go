//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/pawhaven/adopt-api/test/pact"

	adoptserver "github.com/pawhaven/adopt-api/go"
	adoptmemory "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/memory"
	adoptobs "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/observability"
	adoptworkflows "github.com/pawhaven/adopt-api/internal/domains/adoptions/adapters/workflows"
	adoptapp "github.com/pawhaven/adopt-api/internal/domains/adoptions/application"
	adoptdomain "github.com/pawhaven/adopt-api/internal/domains/adoptions/domain"
	petsmemory "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/memory"
	petsobs "github.com/pawhaven/adopt-api/internal/domains/pets/adapters/observability"
	petsapp "github.com/pawhaven/adopt-api/internal/domains/pets/application"
	petsdomain "github.com/pawhaven/adopt-api/internal/domains/pets/domain"
	usersmemory "github.com/pawhaven/adopt-api/internal/domains/users/adapters/memory"
	usersapp "github.com/pawhaven/adopt-api/internal/domains/users/application"
	usersdomain "github.com/pawhaven/adopt-api/internal/domains/users/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestAdoptProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateListingsBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StatePetExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedPet(t)
			}
			return nil, nil
		},
		pacttest.StatePetMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateRequestPending: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedPet(t)
				app.seedPendingRequest(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp hosts the API over in-memory adapters. Every reset
// rebuilds the whole graph so provider states never leak into each other.
type contractProviderApp struct {
	mu        sync.Mutex
	router    *gin.Engine
	pets      *petsmemory.Repository
	adoptions *adoptmemory.Repository
	server    *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.Lock()
		router := app.router
		app.mu.Unlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()

	petRepo := petsmemory.NewRepository()
	petService := petsobs.New(petsapp.NewService(petRepo))

	adoptRepo := adoptmemory.NewRepository(petRepo)
	adoptService := adoptobs.New(adoptapp.NewService(adoptRepo,
		adoptapp.WithIdempotencyStore(adoptmemory.NewIdempotencyStore())))
	workflows := adoptworkflows.NewInlineAdoptionWorkflows(adoptService)

	sessions := usersmemory.NewSessionStore(0)
	userService := usersapp.NewService(usersmemory.NewRepository(), sessions)

	rehomer, err := usersdomain.NewUser(pacttest.RehomerUserID, pacttest.RehomerSubject, "Pact Rehomer", usersdomain.RoleRehomer)
	require.NoError(t, err)
	_, err = userService.Register(ctx, rehomer)
	require.NoError(t, err)
	adopter, err := usersdomain.NewUser(pacttest.AdopterUserID, pacttest.AdopterSubject, "Pact Adopter", usersdomain.RoleAdopter)
	require.NoError(t, err)
	_, err = userService.Register(ctx, adopter)
	require.NoError(t, err)
	require.NoError(t, sessions.Save(ctx, pacttest.RehomerToken, pacttest.RehomerUserID))
	require.NoError(t, sessions.Save(ctx, pacttest.AdopterToken, pacttest.AdopterUserID))

	handlers := adoptserver.ApiHandleFunctions{
		PetAPI:      adoptserver.NewPetAPI(petService),
		AdoptionAPI: adoptserver.NewAdoptionAPI(adoptService, workflows),
		UserAPI:     adoptserver.NewUserAPI(userService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(adoptserver.SessionMiddleware(userService))
	router = adoptserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	a.router = router
	a.pets = petRepo
	a.adoptions = adoptRepo
	a.mu.Unlock()
}

func (a *contractProviderApp) seedPet(t testing.TB) {
	t.Helper()
	pet, err := petsdomain.NewPet(pacttest.ExistingPetID, pacttest.RehomerUserID,
		"Luna Pact Dog", "dog", []string{"https://example.pact/pets/luna.png"})
	require.NoError(t, err)
	a.mu.Lock()
	repo := a.pets
	a.mu.Unlock()
	_, err = repo.Save(context.Background(), pet)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedPendingRequest(t testing.TB) {
	t.Helper()
	a.mu.Lock()
	repo := a.adoptions
	a.mu.Unlock()
	_, err := repo.TransitionPet(context.Background(), pacttest.ExistingPetID, func(view adoptdomain.PetView) (*adoptdomain.ChangeSet, error) {
		return adoptdomain.Submit(view, pacttest.AdopterUserID, "pact seeded request")
	})
	require.NoError(t, err)
}
