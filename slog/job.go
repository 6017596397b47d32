package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagelens/pagelens"
)

// Ensure LoggingJobService implements pagelens.JobService.
var _ pagelens.JobService = (*LoggingJobService)(nil)

// LoggingJobService wraps a JobService with logging of lifecycle changes.
type LoggingJobService struct {
	next   pagelens.JobService
	logger *slog.Logger
}

// NewLoggingJobService creates a new LoggingJobService.
func NewLoggingJobService(next pagelens.JobService, logger *slog.Logger) *LoggingJobService {
	return &LoggingJobService{next: next, logger: logger}
}

// CreateJob delegates to the wrapped service and logs the new job.
func (s *LoggingJobService) CreateJob(ctx context.Context, job *pagelens.Job) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create job",
			"id", job.ID,
			"url", job.URL,
			"mode", job.Mode,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateJob(ctx, job)
}

// FindJobByID delegates to the wrapped service.
func (s *LoggingJobService) FindJobByID(ctx context.Context, id string) (*pagelens.Job, error) {
	return s.next.FindJobByID(ctx, id)
}

// FindJobs delegates to the wrapped service.
func (s *LoggingJobService) FindJobs(ctx context.Context, filter pagelens.JobFilter) ([]*pagelens.Job, error) {
	return s.next.FindJobs(ctx, filter)
}

// UpdateJob delegates to the wrapped service and logs status changes.
func (s *LoggingJobService) UpdateJob(ctx context.Context, id string, upd pagelens.JobUpdate) (job *pagelens.Job, err error) {
	defer func(begin time.Time) {
		status := ""
		if upd.Status != nil {
			status = string(*upd.Status)
		}
		s.logger.Info("update job",
			"id", id,
			"status", status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateJob(ctx, id, upd)
}

// DeleteJob delegates to the wrapped service and logs the deletion.
func (s *LoggingJobService) DeleteJob(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete job",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteJob(ctx, id)
}
