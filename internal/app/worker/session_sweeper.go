package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Sweeper removes expired sessions. *service.SessionManager satisfies it.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SessionSweeper runs Sweep on a cron schedule until its context ends.
type SessionSweeper struct {
	sweeper Sweeper
	spec    string
	timeout time.Duration
	logger  zerolog.Logger
}

func NewSessionSweeper(sweeper Sweeper, spec string, logger zerolog.Logger) *SessionSweeper {
	return &SessionSweeper{
		sweeper: sweeper,
		spec:    spec,
		timeout: 30 * time.Second,
		logger:  logger.With().Str("component", "session_sweeper").Logger(),
	}
}

// Start schedules the sweep and blocks until ctx is cancelled. It returns an
// error only when the schedule cannot be parsed.
func (w *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(w.spec, func() { w.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", w.spec, err)
	}
	w.logger.Info().Str("schedule", w.spec).Msg("Session sweeper started")
	c.Start()

	<-ctx.Done()
	w.logger.Info().Msg("Session sweeper stopping...")
	<-c.Stop().Done()
	return nil
}

// RunOnce performs a single sweep and returns how many sessions were dropped.
func (w *SessionSweeper) RunOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	sweepCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	n, err := w.sweeper.Sweep(sweepCtx)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to sweep expired sessions")
		return 0
	}
	if n > 0 {
		w.logger.Info().Int("removed", n).Msg("Expired sessions swept")
	}
	return n
}
