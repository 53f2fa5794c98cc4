package relay

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pawhaven/adopt-api/internal/domains/adoptions/ports"
)

// DefaultPollSpec runs the relay once a minute.
const DefaultPollSpec = "* * * * *"

// DefaultBatchSize bounds how many decided requests one poll delivers.
const DefaultBatchSize = 100

// Poller periodically drains decided-and-unread requests to the relay.
type Poller struct {
	service   ports.Service
	relay     ports.Relay
	logger    *slog.Logger
	scheduler *cron.Cron
	spec      string
	batchSize int
}

type PollerOption func(*Poller)

// WithPollSpec overrides the cron schedule.
func WithPollSpec(spec string) PollerOption {
	return func(p *Poller) {
		if spec != "" {
			p.spec = spec
		}
	}
}

// WithBatchSize bounds the per-poll delivery size.
func WithBatchSize(size int) PollerOption {
	return func(p *Poller) {
		if size > 0 {
			p.batchSize = size
		}
	}
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) PollerOption {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPoller wires the lifecycle service and the relay into a cron-driven loop.
func NewPoller(service ports.Service, relay ports.Relay, opts ...PollerOption) *Poller {
	p := &Poller{
		service:   service,
		relay:     relay,
		logger:    slog.Default(),
		spec:      DefaultPollSpec,
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Start schedules the poll loop. Call Stop to drain it.
func (p *Poller) Start(ctx context.Context) error {
	if p == nil || p.service == nil || p.relay == nil {
		return errors.New("relay poller not configured")
	}
	if p.scheduler != nil {
		return errors.New("relay poller already started")
	}
	scheduler := cron.New()
	_, err := scheduler.AddFunc(p.spec, func() {
		pollCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		p.pollOnce(pollCtx)
	})
	if err != nil {
		return err
	}
	p.scheduler = scheduler
	scheduler.Start()
	p.logger.LogAttrs(ctx, slog.LevelInfo, "relay poller started", slog.String("spec", p.spec))
	return nil
}

// Stop halts the schedule and waits for a running poll to finish.
func (p *Poller) Stop() {
	if p == nil || p.scheduler == nil {
		return
	}
	<-p.scheduler.Stop().Done()
	p.scheduler = nil
}

func (p *Poller) pollOnce(ctx context.Context) {
	decided, err := p.service.ListUnreadDecided(ctx, p.batchSize)
	if err != nil {
		p.logger.LogAttrs(ctx, slog.LevelError, "relay poll failed", slog.String("error", err.Error()))
		return
	}
	if len(decided) == 0 {
		return
	}
	if err := p.relay.Publish(ctx, decided); err != nil {
		p.logger.LogAttrs(ctx, slog.LevelError, "relay delivery failed",
			slog.Int("count", len(decided)), slog.String("error", err.Error()))
		return
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "relay delivered decided requests", slog.Int("count", len(decided)))
}
