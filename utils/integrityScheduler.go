package utils

import (
	"context"
	"fmt"
	"time"

	"course-service/services"

	"github.com/robfig/cron/v3"
)

// Sweeper is the job the integrity scheduler runs
type Sweeper interface {
	Sweep(ctx context.Context) (*services.SweepReport, error)
}

// StartIntegrityScheduler runs sweeper on the cron spec (standard five-field or
// @every descriptors). The caller stops the returned cron on shutdown.
func StartIntegrityScheduler(spec string, sweeper Sweeper, logger services.Logger) (*cron.Cron, error) {
	logger.Infof("[INTEGRITY-SCHEDULER] Initializing integrity scheduler...")

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		RunIntegritySweep(sweeper, logger)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid integrity schedule %q: %w", spec, err)
	}

	c.Start()
	logger.Infof("[INTEGRITY-SCHEDULER] Integrity scheduler started - runs %s", spec)
	return c, nil
}

// RunIntegritySweep runs one bounded sweep and logs its outcome
func RunIntegritySweep(sweeper Sweeper, logger services.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger.Infof("[INTEGRITY-SCHEDULER] Running catalog integrity sweep...")
	report, err := sweeper.Sweep(ctx)
	if err != nil {
		logger.Errorf("[INTEGRITY-SCHEDULER] Sweep failed: %v", err)
		return
	}
	logger.Infof("[INTEGRITY-SCHEDULER] Sweep done: %d flags repaired, %d orphaned category references",
		report.RepairedPublishedFlags, len(report.OrphanedCategoryIDs))
}
