package main

import (
	"fmt"

	"github.com/pagelens/pagelens"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pagelens.Errorf(pagelens.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Jobs.DeleteJob(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted job %s\n", c.ID)
	return nil
}
