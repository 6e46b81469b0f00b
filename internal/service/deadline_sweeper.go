package service

import (
	"context"
	"sync"
	"time"

	"github.com/lshigami/aptiscore/config"
	"github.com/rs/zerolog/log"
)

// DeadlineSweeper periodically submits timed submissions whose time limit has passed.
// It is idle when the configured interval is zero.
type DeadlineSweeper struct {
	submissions SubmissionService
	interval    time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDeadlineSweeper(cfg *config.Config, submissions SubmissionService) *DeadlineSweeper {
	return &DeadlineSweeper{submissions: submissions, interval: cfg.SweepInterval}
}

func (d *DeadlineSweeper) Enabled() bool {
	return d.interval > 0
}

// Start launches the sweep loop. Calling Start on a disabled sweeper is a no-op.
func (d *DeadlineSweeper) Start() {
	if !d.Enabled() {
		log.Info().Msg("Deadline sweeper disabled")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		log.Info().Dur("interval", d.interval).Msg("Deadline sweeper started")
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.Sweep(ctx)
			}
		}
	}()
}

// Sweep runs one pass and returns the number of submissions closed.
func (d *DeadlineSweeper) Sweep(ctx context.Context) int {
	n, err := d.submissions.SubmitExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Deadline sweep failed")
		return n
	}
	if n > 0 {
		log.Info().Int("submitted", n).Msg("Deadline sweep closed expired submissions")
	}
	return n
}

func (d *DeadlineSweeper) Stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	d.wg.Wait()
	log.Info().Msg("Deadline sweeper stopped")
}
