package scheduler

import (
	"log"
	"time"

	"github.com/example/quizkit/internal/database"
	"github.com/go-co-op/gocron"
)

// Scheduler manages scheduled maintenance tasks for the application
type Scheduler struct {
	scheduler  *gocron.Scheduler
	sessions   *database.SessionRepository
	sessionTTL time.Duration
}

// New creates a new scheduler instance
func New(sessionTTL time.Duration) *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		sessions:   database.NewSessionRepository(),
		sessionTTL: sessionTTL,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start(interval time.Duration) {
	s.scheduler.Every(interval).Do(s.purgeExpiredSessions)

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// purgeExpiredSessions deletes sessions past their TTL. CSRF tokens
// bound to them are removed by the foreign key cascade.
func (s *Scheduler) purgeExpiredSessions() {
	cutoff := time.Now().Add(-s.sessionTTL)
	count, err := s.sessions.DeleteOlderThan(cutoff)
	if err != nil {
		log.Printf("Error purging expired sessions: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Purged %d expired sessions", count)
	}
}
