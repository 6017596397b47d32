package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pagelens/pagelens"
)

// Run executes the analyze command. Analysis is synchronous; no job is
// recorded.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	html, err := c.readInput()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	url := c.URL
	if url == "" {
		url = "file://" + c.File
	}

	result, err := deps.Engine.Analyze(deps.Ctx, pagelens.Request{
		URL:         url,
		HTML:        html,
		Mode:        pagelens.Mode(c.Mode),
		Selector:    c.Selector,
		AIRequested: c.AI,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagelens.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}

func (c *AnalyzeCmd) readInput() (string, error) {
	if c.File == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", c.File, err)
	}
	return string(raw), nil
}
