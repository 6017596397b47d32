package pagelens

import (
	"context"
	"time"
)

// Mode selects which extraction pipeline processes a document.
type Mode string

// Pipeline modes.
const (
	ModeArticle Mode = "article"
	ModeProduct Mode = "product"
	ModeSEO     Mode = "seo"
)

// Valid reports whether the mode names a known pipeline.
func (m Mode) Valid() bool {
	switch m {
	case ModeArticle, ModeProduct, ModeSEO:
		return true
	}
	return false
}

// Status represents the lifecycle state of a job.
type Status string

// Job lifecycle states. Jobs move pending -> running -> done|error and
// never backward; done and error are terminal.
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Terminal reports whether the status is a terminal state.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// CanTransition reports whether a transition from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusRunning
	case StatusRunning:
		return next == StatusDone || next == StatusError
	}
	return false
}

// Request is the input to the engine: raw page HTML plus analysis parameters.
// The engine never fetches pages itself; callers supply the HTML and the
// source URL it came from.
type Request struct {
	URL         string `json:"url"`
	HTML        string `json:"html"`
	Mode        Mode   `json:"mode"`
	Selector    string `json:"selector,omitempty"`
	AIRequested bool   `json:"aiRequested"`
}

// Validate returns an error if the request cannot be processed at all.
// Empty HTML is deliberately not checked here; the normalizer reports it
// as the document-level fatal error.
func (r *Request) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "request URL required")
	}
	if !r.Mode.Valid() {
		return Errorf(EINVALID, "invalid mode %q", r.Mode)
	}
	return nil
}

// Job represents one unit of scrape-and-analyze work tracked through a
// lifecycle with a stable identifier.
type Job struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Mode        Mode       `json:"mode"`
	Selector    string     `json:"selector,omitempty"`
	AIRequested bool       `json:"aiRequested"`
	Status      Status     `json:"status"`
	Result      *Result    `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
}

// Validate returns an error if the job contains invalid fields.
func (j *Job) Validate() error {
	if j.URL == "" {
		return Errorf(EINVALID, "job URL required")
	}
	if !j.Mode.Valid() {
		return Errorf(EINVALID, "invalid mode %q", j.Mode)
	}
	return nil
}

// JobService represents a service for managing jobs. The engine is the only
// writer of a job's status and result fields; reads are always safe.
type JobService interface {
	// CreateJob creates a new job in the pending state.
	CreateJob(ctx context.Context, job *Job) error

	// FindJobByID retrieves a job by ID.
	// Returns ENOTFOUND if the job does not exist.
	FindJobByID(ctx context.Context, id string) (*Job, error)

	// FindJobs retrieves jobs matching the filter in creation order.
	FindJobs(ctx context.Context, filter JobFilter) ([]*Job, error)

	// UpdateJob applies a partial update to a job. Status changes must
	// follow the lifecycle; illegal transitions return EINVALID.
	// Returns ENOTFOUND if the job does not exist.
	UpdateJob(ctx context.Context, id string, upd JobUpdate) (*Job, error)

	// DeleteJob permanently removes a job.
	// Returns ENOTFOUND if the job does not exist.
	DeleteJob(ctx context.Context, id string) error
}

// JobFilter represents a filter for FindJobs.
type JobFilter struct {
	ID     *string `json:"id"`
	Status *Status `json:"status"`
	Mode   *Mode   `json:"mode"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// JobUpdate represents fields that can be updated on a job.
type JobUpdate struct {
	Status     *Status    `json:"status"`
	Result     *Result    `json:"result"`
	Error      *string    `json:"error"`
	FinishedAt *time.Time `json:"finishedAt"`
}
