// Package scheduler runs the correlation cycle on a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cybersecalert/correlator-backend/engine"
	"github.com/cybersecalert/correlator-backend/util"
	"go.uber.org/zap"
)

const defaultIntervalMinutes = 30

// Interval reads the cycle interval from the environment
func Interval() time.Duration {
	minutes, err := strconv.Atoi(util.GetEnvDefault("CYCLE_INTERVAL_MINUTES", ""))
	if err != nil || minutes <= 0 {
		minutes = defaultIntervalMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// Run triggers a correlation cycle immediately and then on every tick until
// the context is cancelled. A tick that lands while a manually-triggered
// cycle is still running is skipped; the engine's guard decides, not the
// ticker.
func Run(ctx context.Context, eng *engine.Engine, interval time.Duration, logger *zap.Logger) {
	logger.Sugar().Infof("Scheduler running with a %s interval", interval)

	runOnce(ctx, eng, logger)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Sugar().Infof("Scheduler stopped")
			return
		case <-ticker.C:
			runOnce(ctx, eng, logger)
		}
	}
}

func runOnce(ctx context.Context, eng *engine.Engine, logger *zap.Logger) {
	if err := eng.RunCycle(ctx); err != nil {
		if errors.Is(err, engine.ErrCycleInProgress) {
			logger.Sugar().Infof("Skipping scheduled cycle: previous cycle still running")
			return
		}
		logger.Sugar().Errorf("Scheduled cycle failed: %v", err)
	}
}
