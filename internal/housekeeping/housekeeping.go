// internal/housekeeping/housekeeping.go
package housekeeping

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/proglide/admin-console/internal/middleware"
	"github.com/proglide/admin-console/internal/session"
	"github.com/proglide/admin-console/internal/workspace"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Sweeper drops in-memory state nobody will read again.
type Sweeper struct {
	Sessions     *session.Manager
	Workspaces   *workspace.Registry
	LoginLimiter *middleware.RateLimiter
	IdleWindow   time.Duration
}

func (s *Sweeper) Run() {
	defer func() {
		if err := recover(); err != nil {
			logrus.WithField("panic", err).Error("Housekeeping run failed")
		}
	}()

	fields := logrus.Fields{}
	if s.Workspaces != nil {
		fields["workspaces"] = s.Workspaces.Sweep(s.IdleWindow)
	}
	if s.Sessions != nil {
		fields["revocations"] = s.Sessions.Sweep()
	}
	if s.LoginLimiter != nil {
		fields["limiter_clients"] = s.LoginLimiter.Sweep(s.IdleWindow)
	}
	logrus.WithFields(fields).Debug("Housekeeping swept")
}

// Start schedules the sweeper and starts the scheduler. Callers stop it with
// the returned cron's Stop.
func Start(schedule string, s *Sweeper) (*cron.Cron, error) {
	sched := cron.New(cron.WithParser(cronParser))
	if _, err := sched.AddFunc(schedule, s.Run); err != nil {
		return nil, fmt.Errorf("invalid housekeeping schedule %q: %w", schedule, err)
	}
	sched.Start()
	return sched, nil
}
