package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/tracking"

	"github.com/robfig/cron/v3"
)

// DefaultFlushSchedule flushes buffered courier positions every ten seconds.
const DefaultFlushSchedule = "*/10 * * * * *"

// LocationUpdater persists one courier's position.
type LocationUpdater interface {
	Handle(ctx context.Context, command commands.UpdateCourierLocationCommand) error
}

// LocationFlushJob periodically drains the in-memory position buffer and
// persists each courier's last known location. The live stream already got
// every sample; this job only keeps the durable record roughly current, so
// a failed flush loses nothing that cannot be recovered by the next report.
type LocationFlushJob struct {
	buffer   *tracking.PositionBuffer
	updater  LocationUpdater
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewLocationFlushJob creates a flush job. An empty schedule falls back to
// DefaultFlushSchedule.
func NewLocationFlushJob(
	buffer *tracking.PositionBuffer,
	updater LocationUpdater,
	schedule string,
	logger *slog.Logger,
) *LocationFlushJob {
	if schedule == "" {
		schedule = DefaultFlushSchedule
	}

	return &LocationFlushJob{
		buffer:   buffer,
		updater:  updater,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "location_flush_job"),
	}
}

// Start schedules the flush cycle.
func (j *LocationFlushJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Flush(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location flush job started", "schedule", j.schedule)
	return nil
}

// Stop stops the flush job.
func (j *LocationFlushJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location flush job stopped")
}

// Flush drains the buffer and persists every pending position. Failures are
// logged per courier; one bad record does not block the rest of the batch.
func (j *LocationFlushJob) Flush(ctx context.Context) {
	for deliveryPersonID, point := range j.buffer.Drain() {
		cmd, err := commands.NewUpdateCourierLocationCommand(
			deliveryPersonID, point.Latitude(), point.Longitude(), "",
		)
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build location update",
				"delivery_person_id", deliveryPersonID.String(), "error", err)
			continue
		}

		if err = j.updater.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Failed to persist courier location",
				"delivery_person_id", deliveryPersonID.String(), "error", err)
		}
	}
}
