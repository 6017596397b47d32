package main

import (
	"encoding/json"
	"fmt"

	"github.com/pagelens/pagelens"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetch.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	job, err := deps.Engine.Submit(deps.Ctx, pagelens.Request{
		URL:         c.URL,
		HTML:        html,
		Mode:        pagelens.Mode(c.Mode),
		Selector:    c.Selector,
		AIRequested: c.AI,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	if c.Async {
		fmt.Fprintf(deps.Stdout, "Submitted job %s\n", job.ID)
		return nil
	}

	deps.Engine.Wait()

	final, err := deps.Jobs.FindJobByID(deps.Ctx, job.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	return printJob(deps, final)
}

// printJob writes a finished job's result (or error) to stdout.
func printJob(deps *Dependencies, job *pagelens.Job) error {
	if job.Status == pagelens.StatusError {
		fmt.Fprintf(deps.Stderr, "error: %s\n", job.Error)
		return pagelens.Errorf(pagelens.EINTERNAL, "job %s failed: %s", job.ID, job.Error)
	}
	if job.Result == nil {
		fmt.Fprintf(deps.Stdout, "Job %s is %s\n", job.ID, job.Status)
		return nil
	}

	out, err := json.MarshalIndent(job.Result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
