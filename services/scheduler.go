// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartExpirySweeper runs the challenge expiry sweep on a fixed interval.
// This is the out-of-band half of the policy; every challenge list read also
// sweeps, so a dead scheduler only delays the flip until the next fetch.
// The sweep is idempotent, so the two triggers are safe to race.
func (s *ChallengeService) StartExpirySweeper() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] Failed to create scheduler: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if _, err := s.SweepExpired(time.Now()); err != nil {
				log.Printf("[Scheduler] Challenge expiry sweep failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Printf("[Scheduler] Failed to schedule expiry sweep: %v", err)
	}
}
