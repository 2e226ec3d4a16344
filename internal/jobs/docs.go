// Package jobs provides scheduled background tasks for the resale pickup
// system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the pickup workflow.
//
// # Available Jobs
//
// 1. PickupExpiryJob - Runs every ten minutes to cancel pickup requests that
// stayed pending past their TTL, freeing their listings for reassignment
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelStalePickupsHandler, pickupTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry job uses the cron expression "0 */10 * * * *", running at the
// top of every tenth minute. Staleness is measured against the request
// creation time, so a slow tick only delays cancellation, never skips it.
//
// # Error Handling
//
// The expiry job logs failures and retries on the next tick; a failed run
// leaves the stale requests pending, and the following run picks them up
// again.
package jobs
