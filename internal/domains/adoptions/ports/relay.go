package ports

import (
	"context"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
)

// Relay publishes decided adoption requests to an external notification
// collaborator. Delivery never changes request state; read flags belong to
// the requester via MarkRead.
type Relay interface {
	Publish(ctx context.Context, decided []*adopttypes.RequestProjection) error
}
