package workers

import (
	"jobvibes_backend/internal/logger"
	"jobvibes_backend/internal/repositories"

	"github.com/robfig/cron/v3"
)

// CleanupWorker prunes expired OTPs and sessions on a schedule.
type CleanupWorker struct {
	userRepo repositories.UserRepository
	cron     *cron.Cron
}

func NewCleanupWorker(userRepo repositories.UserRepository) *CleanupWorker {
	return &CleanupWorker{
		userRepo: userRepo,
		cron:     cron.New(),
	}
}

func (w *CleanupWorker) Start() {
	// Expired OTPs go quickly, stale sessions once a day.
	_, err := w.cron.AddFunc("*/10 * * * *", w.cleanOtps)
	if err != nil {
		logger.WorkerLog("cleanup", "failed to schedule otp cleanup", err)
	}
	_, err = w.cron.AddFunc("0 3 * * *", w.cleanSessions)
	if err != nil {
		logger.WorkerLog("cleanup", "failed to schedule session cleanup", err)
	}
	w.cron.Start()
	logger.WorkerLog("cleanup", "started", nil)
}

func (w *CleanupWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	logger.WorkerLog("cleanup", "stopped", nil)
}

func (w *CleanupWorker) cleanOtps() {
	if err := w.userRepo.CleanExpiredOtps(); err != nil {
		logger.WorkerLog("cleanup", "otp cleanup failed", err)
	}
}

func (w *CleanupWorker) cleanSessions() {
	if err := w.userRepo.CleanExpiredSessions(); err != nil {
		logger.WorkerLog("cleanup", "session cleanup failed", err)
	}
}
