package main

import (
	"fmt"

	"github.com/pagelens/pagelens"
)

// Run executes the rewrite command.
func (c *RewriteCmd) Run(deps *Dependencies) error {
	rewritten, err := deps.Engine.Rewrite(deps.Ctx, c.Text, c.Instructions)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, rewritten)
	return nil
}
