// Package jobs runs the periodic tasks of the alert watcher.
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config represents a configuration for the jobs
type Config struct {
	CheckSearchAlertsCronExp string `toml:"check_alerts_cron"`
	TimeZone                 string `toml:"time_zone,omitempty"`
}

// DefaultCheckSearchAlertsCronExp checks the alerts every 5 minutes
const DefaultCheckSearchAlertsCronExp = "*/5 * * * *"

const checkSearchAlertsTag = "CheckSearchAlerts"

// Scheduler runs the jobs one at a time
type Scheduler struct {
	scheduler *gocron.Scheduler
	ctx       context.Context
}

// NewScheduler creates a scheduler running the checker's jobs as configured
// the jobs are passed ctx, which should be canceled after stopping the scheduler
func NewScheduler(ctx context.Context, config Config, checker *Checker) (*Scheduler, error) {
	loc := time.Local
	if config.TimeZone != "" {
		var err error
		if loc, err = time.LoadLocation(config.TimeZone); err != nil {
			return nil, errors.Wrap(err, "jobs: invalid time zone")
		}
	}
	cronExp := config.CheckSearchAlertsCronExp
	if cronExp == "" {
		cronExp = DefaultCheckSearchAlertsCronExp
	}

	s := &Scheduler{scheduler: gocron.NewScheduler(loc), ctx: ctx}
	s.scheduler.SetMaxConcurrentJobs(1, gocron.RescheduleMode)
	_, err := s.scheduler.Cron(cronExp).Tag(checkSearchAlertsTag).Do(func() {
		checker.CheckSearchAlerts(s.ctx)
	})
	if err != nil {
		return nil, errors.Wrap(err, "jobs: failed to schedule CheckSearchAlerts")
	}
	return s, nil
}

// Start starts running the jobs in the background, the first run happens immediately
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
	log.Infof("scheduled %d jobs", s.scheduler.Len())
	if err := s.scheduler.RunByTag(checkSearchAlertsTag); err != nil {
		log.Errorf("failed to run %s: %v", checkSearchAlertsTag, err)
	}
}

// Stop stops the scheduler, waiting for the running job to finish
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}
