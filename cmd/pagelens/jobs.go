package main

import (
	"fmt"
	"time"

	"github.com/pagelens/pagelens"
)

// Run executes the jobs command.
func (c *JobsCmd) Run(deps *Dependencies) error {
	filter := pagelens.JobFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Status != "" {
		status := pagelens.Status(c.Status)
		filter.Status = &status
	}
	if c.Mode != "" {
		mode := pagelens.Mode(c.Mode)
		filter.Mode = &mode
	}

	jobs, err := deps.Jobs.FindJobs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found. Use 'pagelens scrape' or 'pagelens analyze' to create one.")
		return nil
	}

	for _, j := range jobs {
		fmt.Fprintf(deps.Stdout, "%s  %-7s  %-7s  %s  %s\n",
			j.ID, j.Status, j.Mode, j.CreatedAt.Format(time.RFC3339), j.URL)
	}

	return nil
}
