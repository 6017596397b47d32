package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/bloom"
	"github.com/pagelens/pagelens/engine"
	"github.com/pagelens/pagelens/gemini"
	"github.com/pagelens/pagelens/htmltomarkdown"
	plhttp "github.com/pagelens/pagelens/http"
	"github.com/pagelens/pagelens/readability"
	plslog "github.com/pagelens/pagelens/slog"
	"github.com/pagelens/pagelens/sqlite"
	"github.com/pagelens/pagelens/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Config path. Empty means built-in defaults.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Job service for end-to-end testing.
	JobService pagelens.JobService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: os.Getenv("PAGELENS_CONFIG"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagelens"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagelens --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := pagelens.DefaultConfig()
	if m.ConfigPath != "" {
		cfg, err = pagelens.LoadConfig(m.ConfigPath)
		if err != nil {
			return err
		}
	}

	logger := newLogger(stderr)

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PAGELENS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.JobService = plslog.NewLoggingJobService(sqlite.NewJobService(m.DB), logger)
	deps.DB = m.DB
	deps.Jobs = m.JobService

	fallback := cli.Scrape.Fallback
	if cmd == "analyze" {
		fallback = cli.Analyze.Fallback
	}

	deps.Engine = &engine.Engine{
		Jobs:      m.JobService,
		Fallback:  newFallbackExtractor(fallback),
		Converter: htmltomarkdown.NewConverter(),
		Seen:      bloom.NewFilter(100000, 0.01),
		Config:    cfg,
		Logger:    logger,
	}

	if cmd == "scrape" {
		deps.Fetch = plslog.NewLoggingFetcher(plhttp.NewFetcher(), logger)
	}

	// Wire the AI provider only for commands that can use it
	needsAI := cmd == "rewrite" ||
		(cmd == "scrape" && cli.Scrape.AI) ||
		(cmd == "analyze" && cli.Analyze.AI)
	if needsAI {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		counter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		deps.Engine.Provider = plslog.NewLoggingProvider(gemini.NewProvider(client, counter), logger)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for local token counting when bounding prompts.
const tokenizerModel = "gemini-2.5-flash"

func newFallbackExtractor(name string) pagelens.Extractor {
	if name == "readability" {
		return readability.NewExtractor()
	}
	return trafilatura.NewExtractor()
}

func newLogger(stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if os.Getenv("PAGELENS_VERBOSE") != "" {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("PAGELENS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagelens.db"
	}
	dir := filepath.Join(home, ".pagelens")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pagelens.db")
}
