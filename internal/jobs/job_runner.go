package jobs

import (
	"sync"
	"time"

	"helpmatch-backend/internal/config"
	"helpmatch-backend/internal/logger"
	"helpmatch-backend/internal/realtime"
	"helpmatch-backend/internal/repository"
	"helpmatch-backend/internal/service"
)

// ReminderKey identifies one emitted reminder: a request paired with a lead
// window. Keys live for the process lifetime only; a restart resets the
// dedup state. That loss is accepted: keys are bounded by active in-progress
// requests times the window count, and a duplicate after a restart is a
// minor annoyance, not a correctness problem.
type ReminderKey struct {
	RequestID int32
	Window    time.Duration
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	requests repository.RequestRepository
	users    repository.UserRepository
	hub      realtime.Publisher
	email    service.EmailService // nil disables reminder mail
	config   *config.Config

	now func() time.Time

	mu      sync.Mutex
	emitted map[ReminderKey]bool
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	requests repository.RequestRepository,
	users repository.UserRepository,
	hub realtime.Publisher,
	email service.EmailService,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		requests: requests,
		users:    users,
		hub:      hub,
		email:    email,
		config:   cfg,
		now:      time.Now,
		emitted:  make(map[ReminderKey]bool),
	}
}

// Config returns the runner's configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// claim marks the key emitted and reports whether this caller won it. The
// scheduler timer runs concurrently with everything else, so the set is
// mutex-guarded.
func (jr *JobRunner) claim(key ReminderKey) bool {
	jr.mu.Lock()
	defer jr.mu.Unlock()
	if jr.emitted[key] {
		return false
	}
	jr.emitted[key] = true
	return true
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Debug("Starting job", "job", jobName)
	jobFunc()
	logger.Debug("Job completed", "job", jobName)
}
