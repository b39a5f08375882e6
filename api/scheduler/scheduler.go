package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// reminderSpec runs the hearing reminder job every 15 minutes
const reminderSpec = "*/15 * * * *"

// jobTimeout bounds a single run of a job
const jobTimeout = 5 * time.Minute

// Reminders sends reminders for hearings that start soon
type Reminders interface {
	SendReminders(ctx context.Context) (int, error)
}

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron      *cron.Cron
	Reminders Reminders
}

// NewScheduler creates a new scheduler instance
func NewScheduler(reminders Reminders) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		Reminders: reminders,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() error {
	// each hearing is claimed atomically, so overlapping runs across
	// instances send one reminder per hearing
	if _, err := s.cron.AddFunc(reminderSpec, s.sendHearingReminders); err != nil {
		zap.S().Errorw("failed to register hearing reminder job", "error", err)
		return err
	}

	s.cron.Start()
	zap.S().Info("hearing scheduler started")
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("hearing scheduler stopped")
}

func (s *Scheduler) sendHearingReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := s.Reminders.SendReminders(ctx)
	if err != nil {
		zap.S().Errorw("hearing reminder job failed", "sent", sent, "error", err)
		return
	}
	if sent > 0 {
		zap.S().Infow("hearing reminders sent", "sent", sent)
	}
}
