// file: internals/features/funnel/scheduler/dedup_sweep.go
package scheduler

import (
	"context"
	"log"
	"time"

	"suitability_backend/internals/configs"
	service "suitability_backend/internals/features/funnel/submissions/service"
)

// StartDedupSweepScheduler runs the duplicate-submission sweep on a fixed
// interval (default hourly). Each pass groups records by email and merges
// duplicates into one keeper; a failing group is logged and skipped inside
// the service, so the loop itself only ever logs.
func StartDedupSweepScheduler(dedup *service.DedupService) {
	go func() {
		interval := configs.DedupSweepInterval()

		for {
			log.Println("[SWEEP] running duplicate submission sweep...")

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			merged, err := dedup.Sweep(ctx)
			cancel()

			if err != nil {
				log.Printf("[SWEEP ERROR] sweep pass failed: %v", err)
			} else if merged > 0 {
				log.Printf("[SWEEP] merged %d duplicate groups", merged)
			} else {
				log.Println("[SWEEP] nothing to merge")
			}

			time.Sleep(interval)
		}
	}()
}
