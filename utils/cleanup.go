package utils

import (
	"time"

	"items-admin-backend/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Retry configuration
const maxRetries = 3

var retryDelay = 2 * time.Minute

// UploadRunPurger deletes audit rows completed before cutoff.
type UploadRunPurger interface {
	PurgeUploadRunsBefore(cutoff time.Time) (int64, error)
}

// PurgeExpiredUploadRuns removes runs older than retention, retrying on
// failure.
func PurgeExpiredUploadRuns(purger UploadRunPurger, retention time.Duration, now time.Time) error {
	cutoff := now.Add(-retention)

	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var removed int64
		removed, err = purger.PurgeUploadRunsBefore(cutoff)
		if err == nil {
			config.Logger.Info("Upload run cleanup successful",
				zap.Int64("removed", removed),
				zap.Time("cutoff", cutoff),
			)
			return nil
		}

		config.Logger.Warn("Upload run cleanup failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < maxRetries {
			time.Sleep(retryDelay)
		}
	}

	config.Logger.Error("Upload run cleanup failed after retries", zap.Int("retries", maxRetries), zap.Error(err))
	return err
}

// RunScheduledCleanup purges expired upload runs every day at 1 AM. The
// returned scheduler is already started; callers stop it on shutdown.
func RunScheduledCleanup(purger UploadRunPurger, retention time.Duration) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc("0 1 * * *", func() {
		config.Logger.Info("Running scheduled upload run cleanup")
		_ = PurgeExpiredUploadRuns(purger, retention, time.Now())
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
