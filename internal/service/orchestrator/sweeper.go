package orchestrator

import (
	"context"
	"time"

	"github.com/sandevgo/deskbot/pkg/log"
	"github.com/sandevgo/deskbot/pkg/srv"
)

// NewSweeper returns a service that periodically evicts idle identities.
func NewSweeper(o *Orchestrator, interval, idle time.Duration) *srv.Periodic {
	return srv.NewPeriodic("session-sweeper", interval, func(ctx context.Context) error {
		l, s, p, b := o.Sweep(time.Now(), idle)
		if l+s+p+b > 0 {
			log.FromCtx(ctx).Debug().
				Int("limiter", l).
				Int("sessions", s).
				Int("personas", p).
				Int("bookings", b).
				Msg("evicted idle state")
		}
		return nil
	})
}
