// Package engine orchestrates page analysis jobs. It coordinates
// normalization, content selection, extraction, SEO analysis, markdown
// conversion, and AI summarization, and drives each job through its
// lifecycle.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of jobs processed in parallel when
// Concurrency is not set.
const DefaultConcurrency = 4

// Engine processes analysis requests as asynchronous jobs.
type Engine struct {
	Jobs        pagelens.JobService
	Fallback    pagelens.Extractor // used when heuristic selection finds no text
	Converter   pagelens.Converter
	Provider    pagelens.Provider // optional; nil disables AI features
	Seen        *bloom.Filter     // optional; nil disables duplicate detection
	Config      pagelens.Config
	Logger      *slog.Logger
	Concurrency int
	RetryDelays []time.Duration // provider retry backoff; nil uses defaults

	once sync.Once
	g    *errgroup.Group
}

// Submit validates the request, creates a pending job, and schedules it
// for processing. The returned job snapshot is in the pending state; poll
// the job service for progress.
func (e *Engine) Submit(ctx context.Context, req pagelens.Request) (*pagelens.Job, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	job := &pagelens.Job{
		URL:         req.URL,
		Mode:        req.Mode,
		Selector:    req.Selector,
		AIRequested: req.AIRequested,
	}
	if err := e.Jobs.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	id := job.ID
	e.group().Go(func() error {
		e.process(ctx, id, req)
		return nil
	})

	snapshot := *job
	return &snapshot, nil
}

// Wait blocks until all submitted jobs have finished processing.
func (e *Engine) Wait() {
	_ = e.group().Wait()
}

func (e *Engine) group() *errgroup.Group {
	e.once.Do(func() {
		concurrency := e.Concurrency
		if concurrency <= 0 {
			concurrency = DefaultConcurrency
		}
		e.g = &errgroup.Group{}
		e.g.SetLimit(concurrency)
	})
	return e.g
}

// process runs one job through running to a terminal state. Updates that
// fail with ENOTFOUND are swallowed: a deleted job must not come back.
func (e *Engine) process(ctx context.Context, id string, req pagelens.Request) {
	running := pagelens.StatusRunning
	if _, err := e.Jobs.UpdateJob(ctx, id, pagelens.JobUpdate{Status: &running}); err != nil {
		if pagelens.ErrorCode(err) != pagelens.ENOTFOUND {
			e.logError("job start failed", id, err)
		}
		return
	}

	result, err := e.Analyze(ctx, req)

	finishedAt := time.Now().UTC()
	if err != nil {
		status := pagelens.StatusError
		msg := pagelens.ErrorMessage(err)
		if _, uerr := e.Jobs.UpdateJob(ctx, id, pagelens.JobUpdate{
			Status:     &status,
			Error:      &msg,
			FinishedAt: &finishedAt,
		}); uerr != nil && pagelens.ErrorCode(uerr) != pagelens.ENOTFOUND {
			e.logError("job error update failed", id, uerr)
		}
		return
	}

	status := pagelens.StatusDone
	if _, uerr := e.Jobs.UpdateJob(ctx, id, pagelens.JobUpdate{
		Status:     &status,
		Result:     result,
		FinishedAt: &finishedAt,
	}); uerr != nil && pagelens.ErrorCode(uerr) != pagelens.ENOTFOUND {
		e.logError("job done update failed", id, uerr)
	}
}

func (e *Engine) logError(msg, jobID string, err error) {
	if e.Logger == nil {
		return
	}
	e.Logger.Error(msg, "id", jobID, "err", err)
}
