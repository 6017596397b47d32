package main

import (
	"fmt"

	"github.com/pagelens/pagelens"
)

// Run executes the result command.
func (c *ResultCmd) Run(deps *Dependencies) error {
	job, err := deps.Jobs.FindJobByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	return printJob(deps, job)
}
