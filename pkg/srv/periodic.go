package srv

import (
	"context"
	"time"

	"github.com/sandevgo/deskbot/pkg/log"
)

// Periodic runs fn every interval until ctx is done or Shutdown is called.
type Periodic struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	stop     chan struct{}
}

func NewPeriodic(name string, interval time.Duration, fn func(ctx context.Context) error) *Periodic {
	return &Periodic{
		name:     name,
		interval: interval,
		fn:       fn,
		stop:     make(chan struct{}),
	}
}

func (p *Periodic) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("service", p.name).Dur("interval", p.interval).Msg("starting periodic service")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.stop:
			return nil
		case <-ticker.C:
			if err := p.fn(ctx); err != nil {
				logger.Error().Err(err).Str("service", p.name).Msg("periodic run failed")
			}
		}
	}
}

func (p *Periodic) Shutdown(ctx context.Context) error {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
	return nil
}
