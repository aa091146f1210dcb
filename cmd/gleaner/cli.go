package main

import (
	"context"
	"io"

	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/adaptive"
	"github.com/fwojciec/gleaner/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Selectors  gleaner.SelectorStore
	Cache      *adaptive.Cache
	Fetcher    gleaner.Fetcher
	Parser     gleaner.EntityParser
	Feeds      gleaner.FeedService
	Discoverer gleaner.SelectorDiscoverer
	Validator  gleaner.ContentValidator
	Converter  gleaner.Converter
	Tokens     gleaner.TokenCounter
	Entities   gleaner.EntityStore
	Batch      *adaptive.Batch
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetch and parse activity to stderr"`

	Extract  ExtractCmd  `cmd:"" help:"Extract one entity from a page"`
	Batch    BatchCmd    `cmd:"" help:"Extract entities from many URLs"`
	Discover DiscoverCmd `cmd:"" help:"Show selector candidates for a page"`
	Learn    LearnCmd    `cmd:"" help:"Learn and save selectors for a page's domain"`
	Cache    CacheCmd    `cmd:"" help:"Inspect or clear learned selectors"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Type     string `short:"t" default:"article" help:"Entity type to extract"`
	Format   string `default:"json" enum:"json,markdown" help:"Output format (json or markdown)"`
	Fallback string `default:"auto" enum:"auto,gemini,ollama,off" help:"Fallback extractor (auto, gemini, ollama, off)"`
	Render   bool   `help:"Fetch through a headless browser"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" optional:"" name:"url" help:"Page URLs"`
	Feed        string   `help:"RSS/Atom feed to read URLs from"`
	Filter      []string `short:"F" name:"filter" help:"Filter feed URLs by regex (repeatable)"`
	Type        string   `short:"t" default:"article" help:"Entity type to extract"`
	Out         string   `short:"o" default:"entities" help:"Output directory for entity JSON files"`
	SeenFile    string   `name:"seen-file" help:"Bloom filter file of already-ingested URLs"`
	Force       bool     `short:"f" help:"Re-ingest URLs recorded in the seen file"`
	Concurrency int      `short:"c" default:"8" help:"Concurrent fetch limit"`
	Fallback    string   `default:"auto" enum:"auto,gemini,ollama,off" help:"Fallback extractor (auto, gemini, ollama, off)"`
	Render      bool     `help:"Fetch script-heavy domains through a headless browser"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL      string `arg:"" help:"Page URL"`
	Category string `help:"Limit discovery to one category (title, content, author, date, image, section)"`
	Top      int    `default:"5" help:"Candidates to show per category"`
	Render   bool   `help:"Fetch through a headless browser"`
}

// LearnCmd is the "learn" subcommand.
type LearnCmd struct {
	URL      string  `arg:"" help:"Sample page URL"`
	MinScore float64 `name:"min-score" default:"0.5" help:"Minimum discovery confidence to accept a selector"`
	DryRun   bool    `name:"dry-run" help:"Show the selector set without saving it"`
	Render   bool    `help:"Fetch through a headless browser"`
}

// CacheCmd groups the "cache" subcommands.
type CacheCmd struct {
	List  CacheListCmd  `cmd:"" help:"List learned selector sets"`
	Clear CacheClearCmd `cmd:"" help:"Clear all learned selector sets"`
}

// CacheListCmd is the "cache list" subcommand.
type CacheListCmd struct{}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct {
	Force bool `help:"Confirm clearing"`
}
