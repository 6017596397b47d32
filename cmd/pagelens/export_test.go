package main_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pagelens/pagelens"
	main "github.com/pagelens/pagelens/cmd/pagelens"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes a done job to disk", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*pagelens.Job, error) {
				return &pagelens.Job{
					ID:     id,
					URL:    "https://example.com/blog/post",
					Mode:   pagelens.ModeArticle,
					Status: pagelens.StatusDone,
					Result: &pagelens.Result{
						Article:         &pagelens.ArticleData{Title: "A Post"},
						ContentMarkdown: "# A Post",
					},
				}, nil
			},
		}

		dir := t.TempDir()
		deps, stdout, _ := testDeps(jobs)
		cmd := &main.ExportCmd{ID: "job-1", Dir: dir}

		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), filepath.Join(dir, "blog", "post.md"))
	})

	t.Run("refuses a job that is still running", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*pagelens.Job, error) {
				return &pagelens.Job{ID: id, Status: pagelens.StatusRunning}, nil
			},
		}

		deps, _, stderr := testDeps(jobs)
		cmd := &main.ExportCmd{ID: "job-1", Dir: t.TempDir()}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "still running")
	})

	t.Run("returns error for unknown job", func(t *testing.T) {
		t.Parallel()

		jobs := &mock.JobService{
			FindJobByIDFn: func(_ context.Context, id string) (*pagelens.Job, error) {
				return nil, pagelens.Errorf(pagelens.ENOTFOUND, "job not found")
			},
		}

		deps, _, stderr := testDeps(jobs)
		cmd := &main.ExportCmd{ID: "nope", Dir: t.TempDir()}

		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pagelens.ENOTFOUND, pagelens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
