//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "adopt-api"
	ConsumerName = "adopter-portal"

	StateListingsBaseline = "pet listings baseline"
	StatePetExists        = "available pet with id 101 exists"
	StatePetMissing       = "no pet with id 404"
	StateRequestPending   = "pending adoption request with id 201 exists"
)

const (
	ExistingPetID    int64 = 101
	MissingPetID     int64 = 404
	PendingRequestID int64 = 201
	RehomerUserID    int64 = 1
	AdopterUserID    int64 = 2

	RehomerSubject = "pact|rehomer"
	AdopterSubject = "pact|adopter"
	RehomerToken   = "pact-rehomer-token"
	AdopterToken   = "pact-adopter-token"
)

const (
	examplePhotoURL = "https://example.pact/pets/luna.png"
	examplePetName  = "Luna Pact Dog"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adopter portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExamplePetPayload provides stable test data for pact interactions.
func ExamplePetPayload() map[string]any {
	return map[string]any{
		"id":        ExistingPetID,
		"ownerId":   RehomerUserID,
		"name":      examplePetName,
		"species":   "dog",
		"photoUrls": []string{examplePhotoURL},
		"status":    "available",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
