package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
)

type normalizedSubmitInput struct {
	PetID       int64  `json:"petId"`
	RequesterID int64  `json:"requesterId"`
	Message     string `json:"message"`
}

// FingerprintSubmit builds a deterministic hash of the submission payload
// (excluding the idempotency key itself).
func FingerprintSubmit(input adopttypes.SubmitInput) (string, error) {
	payload, err := json.Marshal(normalizedSubmitInput{
		PetID:       input.PetID,
		RequesterID: input.RequesterID,
		Message:     input.Message,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
