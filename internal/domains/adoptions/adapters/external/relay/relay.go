package relay

import (
	"context"
	"errors"

	relayclient "github.com/pawhaven/adopt-api/internal/clients/http/relay"
	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
	"github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
)

// Publisher implements the outbound notification relay port.
type Publisher struct {
	client *relayclient.Client
}

// NewPublisher wires a relay HTTP client into a publish adapter.
func NewPublisher(client *relayclient.Client) *Publisher {
	return &Publisher{client: client}
}

// Publish pushes decided requests to the webhook. State is untouched.
func (p *Publisher) Publish(ctx context.Context, decided []*adopttypes.RequestProjection) error {
	if p == nil || p.client == nil {
		return errors.New("relay publisher not configured")
	}
	batch := relayclient.Batch{}
	for _, projection := range decided {
		if projection == nil || projection.Request == nil || !projection.Request.Decided() {
			continue
		}
		batch.Notifications = append(batch.Notifications, relayclient.Notification{
			RequestID:   projection.Request.ID,
			PetID:       projection.Request.PetID,
			RequesterID: projection.Request.RequesterID,
			Status:      string(projection.Request.Status),
			DecidedAt:   projection.Metadata.UpdatedAt,
		})
	}
	if len(batch.Notifications) == 0 {
		return nil
	}
	return p.client.Post(ctx, batch)
}

var _ ports.Relay = (*Publisher)(nil)
