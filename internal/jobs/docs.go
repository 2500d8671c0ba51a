// Package jobs provides scheduled background tasks for the fulfillment core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. LocationFlushJob - Periodically persists each courier's most recent
// reported position from the in-memory buffer onto the DeliveryPerson record
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required jobs
//	jobManager := jobs.NewJobManager(locationFlushJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The flush job logs and skips per-courier failures; the live location
// stream is unaffected and the next report repopulates the buffer.
package jobs
