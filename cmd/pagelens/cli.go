package main

import (
	"context"
	"io"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/engine"
	"github.com/pagelens/pagelens/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB
	Jobs   pagelens.JobService
	Engine *engine.Engine
	Fetch  pagelens.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape  ScrapeCmd  `cmd:"" help:"Fetch a URL and analyze it"`
	Analyze AnalyzeCmd `cmd:"" help:"Analyze HTML from a file or stdin"`
	Jobs    JobsCmd    `cmd:"" help:"List analysis jobs"`
	Result  ResultCmd  `cmd:"" help:"Show the result of a job"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a job"`
	Export  ExportCmd  `cmd:"" help:"Export a finished job as a markdown file"`
	Rewrite RewriteCmd `cmd:"" help:"Rewrite text with the AI provider"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string `arg:"" help:"Page URL to fetch and analyze"`
	Mode     string `short:"m" default:"article" enum:"article,product,seo" help:"Analysis mode (article, product, seo)"`
	Selector string `short:"s" help:"CSS selector for the content region"`
	AI       bool   `help:"Request an AI summary (and rewrite in seo mode)"`
	Fallback string `default:"trafilatura" enum:"trafilatura,readability" help:"Fallback extractor for pages without obvious content"`
	Async    bool   `help:"Submit the job and exit without waiting for the result"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	File     string `arg:"" help:"HTML file to analyze, or - for stdin"`
	URL      string `short:"u" help:"Source URL recorded with the job"`
	Mode     string `short:"m" default:"article" enum:"article,product,seo" help:"Analysis mode (article, product, seo)"`
	Selector string `short:"s" help:"CSS selector for the content region"`
	AI       bool   `help:"Request an AI summary (and rewrite in seo mode)"`
	Fallback string `default:"trafilatura" enum:"trafilatura,readability" help:"Fallback extractor for pages without obvious content"`
}

// JobsCmd is the "jobs" subcommand.
type JobsCmd struct {
	Status string `help:"Filter by status (pending, running, done, error)"`
	Mode   string `help:"Filter by mode (article, product, seo)"`
	Limit  int    `default:"20" help:"Maximum number of jobs to show"`
	Offset int    `help:"Number of jobs to skip"`
}

// ResultCmd is the "result" subcommand.
type ResultCmd struct {
	ID string `arg:"" help:"Job ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Job ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID  string `arg:"" help:"Job ID"`
	Dir string `short:"d" default:"." help:"Output directory"`
}

// RewriteCmd is the "rewrite" subcommand.
type RewriteCmd struct {
	Text         string `arg:"" help:"Text to rewrite"`
	Instructions string `arg:"" help:"Rewrite instructions"`
}
