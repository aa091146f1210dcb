package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/adaptive"
	"github.com/fwojciec/gleaner/fetch"
	"github.com/fwojciec/gleaner/fs"
	"github.com/fwojciec/gleaner/gemini"
	"github.com/fwojciec/gleaner/goquery"
	gleanhttp "github.com/fwojciec/gleaner/http"
	"github.com/fwojciec/gleaner/htmltomarkdown"
	"github.com/fwojciec/gleaner/ollama"
	"github.com/fwojciec/gleaner/rod"
	gleanslog "github.com/fwojciec/gleaner/slog"
	"github.com/fwojciec/gleaner/sqlite"
	"github.com/fwojciec/gleaner/trafilatura"
	"github.com/fwojciec/gleaner/validate"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path for learned selectors. Set before calling Run().
	DBPath string

	// SQLite database backing the selector store.
	DB *sqlite.DB

	// Selector state for end-to-end testing.
	Selectors gleaner.SelectorStore
	Cache     *adaptive.Cache
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gleaner"),
		kong.Description("Extract structured news entities from web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gleaner --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	// Open the selector database and preload the in-memory cache
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set GLEANER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Selectors = sqlite.NewSelectorStore(m.DB)
	sets, err := m.Selectors.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load learned selectors: %w", err)
	}
	m.Cache = adaptive.NewCache()
	m.Cache.Restore(sets)

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Wire core services into dependencies
	deps.DB = m.DB
	deps.Selectors = m.Selectors
	deps.Cache = m.Cache
	deps.Validator = validate.NewValidator()
	deps.Converter = htmltomarkdown.NewConverter()
	deps.Feeds = gleanhttp.NewFeedService(nil)
	deps.Discoverer = goquery.NewDiscoverer()
	if logger != nil {
		deps.Feeds = gleanslog.NewLoggingFeedService(deps.Feeds, logger)
		deps.Discoverer = gleanslog.NewLoggingDiscoverer(deps.Discoverer, logger)
	}

	// Wire the fetch stack for commands that touch the network
	switch cmd {
	case "extract", "batch", "discover", "learn":
		render, targets := renderTargets(cmd, cli)
		base, err := buildFetcher(render, targets, stderr)
		if err != nil {
			return err
		}
		defer base.Close()

		fetcher := base
		if cmd == "batch" {
			fetcher = fetch.NewCachingFetcher(fetcher, 0)
		}
		if logger != nil {
			fetcher = gleanslog.NewLoggingFetcher(fetcher, logger)
		}
		deps.Fetcher = fetcher
	}

	// Wire the adaptive parser for the extracting commands
	switch cmd {
	case "extract", "batch":
		choice := cli.Extract.Fallback
		if cmd == "batch" {
			choice = cli.Batch.Fallback
		}
		fallback, err := buildFallback(ctx, choice, stderr)
		if err != nil {
			return err
		}
		if logger != nil && fallback != nil {
			fallback = gleanslog.NewLoggingFallbackExtractor(fallback, logger)
		}

		var entityParser gleaner.EntityParser = &adaptive.Parser{
			Structural:   goquery.DefaultRegistry(),
			Fallback:     fallback,
			Cache:        m.Cache,
			Trimmer:      trafilatura.NewTrimmer(),
			Constructors: adaptive.DefaultConstructorRegistry(),
		}
		if logger != nil {
			entityParser = gleanslog.NewLoggingParser(entityParser, logger)
		}
		deps.Parser = entityParser
	}

	if cmd == "batch" {
		tokens, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Tokens = tokens
		deps.Entities = fs.NewEntityStore(filepath.Dir(cli.Batch.Out), filepath.Base(cli.Batch.Out))

		// One request per second per domain keeps batch runs polite
		deps.Batch = &adaptive.Batch{
			Fetcher:     deps.Fetcher,
			Parser:      deps.Parser,
			Limiter:     fetch.NewDomainLimiter(1.0),
			Concurrency: cli.Batch.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting. The local tokenizer supports
// the 2.5 model family.
const tokenizerModel = "gemini-2.5-flash"

// renderTargets returns the render flag and the target URLs known before
// the command runs, so the browser is launched only when needed.
func renderTargets(cmd string, cli *CLI) (bool, []string) {
	switch cmd {
	case "extract":
		return cli.Extract.Render, []string{cli.Extract.URL}
	case "batch":
		return cli.Batch.Render, cli.Batch.URLs
	case "discover":
		return cli.Discover.Render, []string{cli.Discover.URL}
	case "learn":
		return cli.Learn.Render, []string{cli.Learn.URL}
	}
	return false, nil
}

// buildFetcher assembles the shared fetch stack: static HTTP, a headless
// browser for domains that need script execution, retries, and
// sanitize-on-fetch. The browser is launched only when render is set or
// a target URL's domain is known to need it.
func buildFetcher(render bool, urls []string, stderr io.Writer) (gleaner.Fetcher, error) {
	static := gleanhttp.NewFetcher()

	domains := fetch.DefaultRenderedDomains()
	if render {
		for _, u := range urls {
			if d := gleaner.Domain(u); d != "" {
				domains = append(domains, d)
			}
		}
	}

	launch := render
	if !launch {
		probe := fetch.NewSwitch(static, nil, domains)
		for _, u := range urls {
			if probe.NeedsRender(u) {
				launch = true
				break
			}
		}
	}

	var fetcher gleaner.Fetcher = static
	if launch {
		browser, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = fetch.NewSwitch(static, browser, domains)
	}

	fetcher = fetch.NewRetryFetcher(fetcher)
	return fetch.NewSanitizingFetcher(fetcher, goquery.NewSanitizer()), nil
}

// buildFallback selects the fallback extractor. Auto prefers Gemini when
// an API key is present and otherwise uses a local Ollama instance.
func buildFallback(ctx context.Context, choice string, stderr io.Writer) (gleaner.FallbackExtractor, error) {
	switch choice {
	case "off":
		return nil, nil
	case "gemini":
		return buildGemini(ctx, stderr)
	case "ollama":
		return buildOllama(), nil
	default: // auto
		if os.Getenv("GEMINI_API_KEY") != "" {
			return buildGemini(ctx, stderr)
		}
		return buildOllama(), nil
	}
}

func buildGemini(ctx context.Context, stderr io.Writer) (gleaner.FallbackExtractor, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewExtractor(client), nil
}

func buildOllama() gleaner.FallbackExtractor {
	var opts []ollama.Option
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		opts = append(opts, ollama.WithBaseURL(host))
	}
	return ollama.NewExtractor(opts...)
}

func defaultDBPath() string {
	if path := os.Getenv("GLEANER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "gleaner.db"
	}
	dir := filepath.Join(home, ".gleaner")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "selectors.db")
}
