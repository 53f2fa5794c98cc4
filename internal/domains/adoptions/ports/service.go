package ports

import (
	"context"

	adopttypes "github.com/pawhaven/adopt-api/internal/domains/adoptions/application/types"
)

// Service defines the adoption lifecycle use cases (inbound/driving port).
type Service interface {
	Submit(ctx context.Context, input adopttypes.SubmitInput) (*adopttypes.RequestProjection, error)
	Decide(ctx context.Context, input adopttypes.DecideInput) (*adopttypes.RequestProjection, error)
	MarkRead(ctx context.Context, input adopttypes.MarkReadInput) (int64, error)
	GetByID(ctx context.Context, input adopttypes.RequestIdentifier) (*adopttypes.RequestProjection, error)
	ListMine(ctx context.Context, scope adopttypes.RequesterScope) ([]*adopttypes.RequestProjection, error)
	ListInbox(ctx context.Context, scope adopttypes.OwnerScope) ([]*adopttypes.RequestProjection, error)
	ListUnreadDecided(ctx context.Context, limit int) ([]*adopttypes.RequestProjection, error)
}
