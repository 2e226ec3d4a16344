package jobs

import (
	"context"
	"log/slog"
	"time"

	"relist/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PickupExpiryJob cancels pickup requests that stayed pending past their TTL.
// Runs every ten minutes; each run cancels every request created before
// now minus the configured TTL.
type PickupExpiryJob struct {
	handler commands.CancelStalePickupsCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPickupExpiryJob creates a job for expiring stale pickup requests.
// The ttl controls how long a request may stay pending before cancellation.
func NewPickupExpiryJob(
	handler commands.CancelStalePickupsCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *PickupExpiryJob {
	return &PickupExpiryJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "pickup_expiry_job"),
	}
}

// Start begins the expiry job, running every ten minutes.
func (j *PickupExpiryJob) Start() error {
	_, err := j.cron.AddFunc("0 */10 * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCancelStalePickupsCommand(time.Now().Add(-j.ttl))
		if err != nil {
			j.logger.ErrorContext(ctx, "Pickup expiry job failed to build command", "error", err)
			return
		}

		cancelled, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Pickup expiry job failed", "error", err)
			return
		}

		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Cancelled stale pickup requests", "count", cancelled)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pickup expiry job started (running every ten minutes)")
	return nil
}

// Stop stops the pickup expiry job.
func (j *PickupExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pickup expiry job stopped")
}
