package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// pruner is the gallery registry surface the janitor drives
type pruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) ([]string, error)
}

type janitor struct {
	galleries pruner
	expiry    time.Duration
	now       func() time.Time

	lastIdleLog  time.Time
	idleLogEvery time.Duration
}

func newJanitor(galleries pruner, expiry time.Duration) *janitor {
	return &janitor{galleries: galleries, expiry: expiry, now: time.Now, idleLogEvery: time.Hour}
}

// runOnce removes every snapshot created before now minus the expiry
func (j *janitor) runOnce(ctx context.Context) (int, error) {
	start := j.now()
	removed, err := j.galleries.PruneOlderThan(ctx, start.Add(-j.expiry))
	if err != nil {
		return 0, err
	}

	if len(removed) == 0 {
		if j.lastIdleLog.IsZero() || start.Sub(j.lastIdleLog) >= j.idleLogEvery {
			log.Info().Msg("Idle: no expired galleries")
			j.lastIdleLog = start
		}
		return 0, nil
	}

	log.Info().
		Strs("gallery_ids", removed).
		Int("removed", len(removed)).
		Dur("took", j.now().Sub(start)).
		Msg("Expired galleries pruned")
	return len(removed), nil
}

// run prunes on every tick and every wake-up until ctx ends
func (j *janitor) run(ctx context.Context, interval time.Duration, wake <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := j.runOnce(ctx); err != nil {
			log.Error().Err(err).Msg("Gallery prune failed")
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("gallery-janitor stopped")
			return
		case _, ok := <-wake:
			if !ok {
				wake = nil
			}
		case <-ticker.C:
		}
	}
}
