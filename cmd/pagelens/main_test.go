package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pagelens/pagelens"
	main "github.com/pagelens/pagelens/cmd/pagelens"
	"github.com/pagelens/pagelens/engine"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHTML = `<html>
<head><title>Test Page</title><meta name="description" content="A perfectly serviceable description for command tests."></head>
<body><article><h1>Command Test</h1><p>First sentence here. Second sentence follows.</p></article></body>
</html>`

// testDeps returns a Dependencies with buffers for stdout/stderr.
func testDeps(jobs pagelens.JobService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Jobs:   jobs,
		Engine: &engine.Engine{
			Jobs:        jobs,
			Config:      pagelens.DefaultConfig(),
			RetryDelays: []time.Duration{0},
		},
	}, stdout, stderr
}

func TestJobsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists jobs with status and url", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobsFn: func(_ context.Context, filter pagelens.JobFilter) ([]*pagelens.Job, error) {
				assert.Equal(t, 20, filter.Limit)
				return []*pagelens.Job{
					{
						ID:        "job-123",
						URL:       "https://example.com/a",
						Mode:      pagelens.ModeArticle,
						Status:    pagelens.StatusDone,
						CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:        "job-456",
						URL:       "https://example.com/b",
						Mode:      pagelens.ModeProduct,
						Status:    pagelens.StatusPending,
						CreatedAt: time.Date(2026, 1, 16, 11, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		deps, stdout, _ := testDeps(jobs)
		cmd := &main.JobsCmd{Limit: 20}

		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "job-123")
		assert.Contains(t, output, "job-456")
		assert.Contains(t, output, "done")
		assert.Contains(t, output, "pending")
		assert.Contains(t, output, "https://example.com/a")
	})

	t.Run("passes status and mode filters", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobsFn: func(_ context.Context, filter pagelens.JobFilter) ([]*pagelens.Job, error) {
				require.NotNil(t, filter.Status)
				assert.Equal(t, pagelens.StatusDone, *filter.Status)
				require.NotNil(t, filter.Mode)
				assert.Equal(t, pagelens.ModeSEO, *filter.Mode)
				return nil, nil
			},
		}

		deps, stdout, _ := testDeps(jobs)
		cmd := &main.JobsCmd{Status: "done", Mode: "seo"}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No jobs found")
	})

	t.Run("returns error when FindJobs fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")
		jobs := &mock.JobService{
			FindJobsFn: func(_ context.Context, _ pagelens.JobFilter) ([]*pagelens.Job, error) {
				return nil, dbErr
			},
		}

		deps, _, stderr := testDeps(jobs)
		cmd := &main.JobsCmd{}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestResultCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints result JSON for a done job", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*pagelens.Job, error) {
				assert.Equal(t, "job-123", id)
				return &pagelens.Job{
					ID:     "job-123",
					Status: pagelens.StatusDone,
					Result: &pagelens.Result{
						SEO:     &pagelens.SEOResult{Title: "Command Test"},
						Caveats: []string{"meta description missing: synthesized from content"},
					},
				}, nil
			},
		}

		deps, stdout, _ := testDeps(jobs)
		cmd := &main.ResultCmd{ID: "job-123"}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"Command Test"`)
		assert.Contains(t, stdout.String(), "synthesized from content")
	})

	t.Run("reports status for a job still in flight", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*pagelens.Job, error) {
				return &pagelens.Job{ID: id, Status: pagelens.StatusRunning}, nil
			},
		}

		deps, stdout, _ := testDeps(jobs)
		cmd := &main.ResultCmd{ID: "job-123"}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "running")
	})

	t.Run("surfaces a failed job's error", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*pagelens.Job, error) {
				return &pagelens.Job{ID: id, Status: pagelens.StatusError, Error: "empty document"}, nil
			},
		}

		deps, _, stderr := testDeps(jobs)
		cmd := &main.ResultCmd{ID: "job-123"}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "empty document")
	})

	t.Run("returns error for unknown job", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*pagelens.Job, error) {
				return nil, pagelens.Errorf(pagelens.ENOTFOUND, "job not found")
			},
		}

		deps, _, stderr := testDeps(jobs)
		cmd := &main.ResultCmd{ID: "nope"}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pagelens.ENOTFOUND, pagelens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires --force", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(nil)
		cmd := &main.DeleteCmd{ID: "job-123"}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes with --force", func(t *testing.T) {
		t.Parallel()

		deleted := ""
		jobs := &mock.JobService{
			DeleteJobFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		deps, stdout, _ := testDeps(jobs)
		cmd := &main.DeleteCmd{ID: "job-123", Force: true}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Equal(t, "job-123", deleted)
		assert.Contains(t, stdout.String(), "Deleted job job-123")
	})

	t.Run("returns error for unknown job", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			DeleteJobFn: func(_ context.Context, id string) error {
				return pagelens.Errorf(pagelens.ENOTFOUND, "job not found")
			},
		}

		deps, _, stderr := testDeps(jobs)
		cmd := &main.DeleteCmd{ID: "nope", Force: true}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pagelens.ENOTFOUND, pagelens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestRewriteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints rewritten text", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(nil)
		deps.Engine.Provider = &mock.Provider{
			RewriteFn: func(_ context.Context, text, instructions string) (string, error) {
				assert.Equal(t, "hello", text)
				assert.Equal(t, "make it formal", instructions)
				return "Good day.", nil
			},
		}

		cmd := &main.RewriteCmd{Text: "hello", Instructions: "make it formal"}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Equal(t, "Good day.\n", stdout.String())
	})

	t.Run("errors without a provider", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := testDeps(nil)
		cmd := &main.RewriteCmd{Text: "hello", Instructions: "shout"}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pagelens.EUNAVAILABLE, pagelens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
