package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pagelens/pagelens"
)

// Compile-time interface verification.
var _ pagelens.JobService = (*JobService)(nil)

// JobService implements pagelens.JobService using SQLite.
type JobService struct {
	db *DB
}

// NewJobService creates a new JobService.
func NewJobService(db *DB) *JobService {
	return &JobService{db: db}
}

// CreateJob creates a new job in the pending state.
func (s *JobService) CreateJob(ctx context.Context, job *pagelens.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	job.ID = uuid.New().String()
	job.Status = pagelens.StatusPending
	job.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, url, mode, selector, ai_requested, status, result, error, created_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, '', '', ?, NULL)
	`, job.ID, job.URL, string(job.Mode), job.Selector, boolToInt(job.AIRequested),
		string(job.Status), job.CreatedAt.Format(time.RFC3339))

	return err
}

// FindJobByID retrieves a job by ID.
func (s *JobService) FindJobByID(ctx context.Context, id string) (*pagelens.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, mode, selector, ai_requested, status, result, error, created_at, finished_at
		FROM jobs
		WHERE id = ?
	`, id)

	job, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, pagelens.Errorf(pagelens.ENOTFOUND, "job not found")
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// FindJobs retrieves jobs matching the filter in creation order.
func (s *JobService) FindJobs(ctx context.Context, filter pagelens.JobFilter) ([]*pagelens.Job, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, mode, selector, ai_requested, status, result, error, created_at, finished_at FROM jobs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}
	if filter.Mode != nil {
		query.WriteString(" AND mode = ?")
		args = append(args, string(*filter.Mode))
	}

	// rowid breaks ties between jobs created within the same second
	query.WriteString(" ORDER BY created_at ASC, rowid ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*pagelens.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// UpdateJob applies a partial update to a job. Status changes must follow
// the pending -> running -> done|error lifecycle.
func (s *JobService) UpdateJob(ctx context.Context, id string, upd pagelens.JobUpdate) (*pagelens.Job, error) {
	job, err := s.FindJobByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prevStatus := job.Status

	if upd.Status != nil {
		if !job.Status.CanTransition(*upd.Status) {
			return nil, pagelens.Errorf(pagelens.EINVALID,
				"illegal status transition %s -> %s", job.Status, *upd.Status)
		}
		job.Status = *upd.Status
	}
	if upd.Result != nil {
		job.Result = upd.Result
	}
	if upd.Error != nil {
		job.Error = *upd.Error
	}
	if upd.FinishedAt != nil {
		job.FinishedAt = upd.FinishedAt
	}

	resultJSON := ""
	if job.Result != nil {
		raw, err := json.Marshal(job.Result)
		if err != nil {
			return nil, pagelens.Errorf(pagelens.EINTERNAL, "cannot encode result: %v", err)
		}
		resultJSON = string(raw)
	}

	var finishedAt any
	if job.FinishedAt != nil {
		finishedAt = job.FinishedAt.UTC().Format(time.RFC3339)
	}

	// The status guard makes the update a no-op if the job was deleted or
	// advanced by someone else between the read and the write.
	result, err := s.db.ExecContext(ctx, `
		UPDATE jobs
		SET status = ?, result = ?, error = ?, finished_at = ?
		WHERE id = ? AND status = ?
	`, string(job.Status), resultJSON, job.Error, finishedAt, id, string(prevStatus))

	if err != nil {
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, pagelens.Errorf(pagelens.ENOTFOUND, "job not found")
	}

	return job, nil
}

// DeleteJob permanently removes a job.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagelens.Errorf(pagelens.ENOTFOUND, "job not found")
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*pagelens.Job, error) {
	var job pagelens.Job
	var mode, status, resultJSON, createdAt string
	var aiRequested int
	var finishedAt sql.NullString

	if err := row.Scan(&job.ID, &job.URL, &mode, &job.Selector, &aiRequested,
		&status, &resultJSON, &job.Error, &createdAt, &finishedAt); err != nil {
		return nil, err
	}

	job.Mode = pagelens.Mode(mode)
	job.Status = pagelens.Status(status)
	job.AIRequested = aiRequested != 0

	var err error
	job.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	if finishedAt.Valid {
		t, err := parseRFC3339(finishedAt.String, "finished_at")
		if err != nil {
			return nil, err
		}
		job.FinishedAt = &t
	}

	if resultJSON != "" {
		job.Result = &pagelens.Result{}
		if err := json.Unmarshal([]byte(resultJSON), job.Result); err != nil {
			return nil, pagelens.Errorf(pagelens.EINTERNAL, "cannot decode result: %v", err)
		}
	}

	return &job, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
