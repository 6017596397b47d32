package main

import (
	"fmt"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	job, err := deps.Jobs.FindJobByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	if !job.Status.Terminal() {
		fmt.Fprintf(deps.Stderr, "error: job %s is still %s\n", job.ID, job.Status)
		return pagelens.Errorf(pagelens.EINVALID, "job %s is still %s", job.ID, job.Status)
	}

	path, err := fs.NewWriter(c.Dir).WriteJob(job)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
