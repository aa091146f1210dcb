package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/adaptive"
	"github.com/fwojciec/gleaner/bloom"
)

// seenFilterCapacity sizes the bloom filter for roughly a year of daily
// feed ingests.
const (
	seenFilterCapacity = 100000
	seenFilterFPRate   = 0.01
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	typ := gleaner.EntityType(c.Type)
	if !typ.Valid() {
		err := gleaner.Errorf(gleaner.EINVALID, "unknown entity type %q", c.Type)
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	urls, err := c.collectURLs(deps)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		err := gleaner.Errorf(gleaner.EINVALID, "no URLs to extract from")
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	var seen *bloom.Filter
	if c.SeenFile != "" {
		seen, err = loadSeenFilter(c.SeenFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		if c.Force {
			deps.Batch.Seen = reingestFilter{seen}
		} else {
			deps.Batch.Seen = seen
		}
	}

	// Apply user-specified concurrency
	if c.Concurrency > 0 {
		deps.Batch.Concurrency = c.Concurrency
	}

	progress := func(event adaptive.ProgressEvent) {
		switch event.Type {
		case adaptive.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case adaptive.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", adaptive.TruncateURL(event.URL, 60), event.Error)
		case adaptive.ProgressFinished:
			// Summary printed after outcomes are stored
		}
	}

	items, err := deps.Batch.ExtractItems(deps.Ctx, urls, typ, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	saved, bytes, tokens := 0, 0, 0
	for _, item := range items {
		if item.Err != nil {
			continue
		}
		if err := deps.Entities.Save(deps.Ctx, item.Outcome); err != nil {
			_ = deps.Entities.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
			return err
		}
		saved++

		text := entityText(item.Outcome.Entity)
		bytes += len(text)
		if deps.Tokens != nil {
			if n, err := deps.Tokens.CountTokens(deps.Ctx, text); err == nil {
				tokens += n
			}
		}
	}
	if err := deps.Entities.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	if seen != nil {
		if err := saveSeenFilter(c.SeenFile, seen); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d entities (%s, %s)\n",
		saved, adaptive.FormatBytes(bytes), adaptive.FormatTokens(tokens))
	return nil
}

// collectURLs merges positional URLs with feed-discovered ones,
// preserving order and dropping duplicates.
func (c *BatchCmd) collectURLs(deps *Dependencies) ([]string, error) {
	urls := make([]string, 0, len(c.URLs))
	known := make(map[string]bool, len(c.URLs))
	add := func(u string) {
		if !known[u] {
			known[u] = true
			urls = append(urls, u)
		}
	}
	for _, u := range c.URLs {
		add(u)
	}
	if c.Feed == "" {
		return urls, nil
	}

	// Compile filters to URLFilter (validates regex patterns early)
	var filter *gleaner.URLFilter
	if len(c.Filter) > 0 {
		filter = &gleaner.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return nil, err
			}
			filter.Include = append(filter.Include, re)
		}
	}

	feedURLs, err := deps.Feeds.DiscoverURLs(deps.Ctx, c.Feed, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return nil, err
	}
	for _, u := range feedURLs {
		add(u)
	}
	return urls, nil
}

// reingestFilter records ingested URLs without ever reporting them as
// seen, so --force re-processes everything while keeping the seen file
// current.
type reingestFilter struct {
	gleaner.SeenFilter
}

func (reingestFilter) Test(string) bool { return false }

func loadSeenFilter(path string) (*bloom.Filter, error) {
	filter := bloom.NewFilter(seenFilterCapacity, seenFilterFPRate)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return filter, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open seen file %q: %w", path, err)
	}
	defer f.Close()
	if _, err := filter.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("failed to read seen file %q: %w", path, err)
	}
	return filter, nil
}

func saveSeenFilter(path string, filter *bloom.Filter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write seen file %q: %w", path, err)
	}
	if _, err := filter.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write seen file %q: %w", path, err)
	}
	return f.Close()
}

// entityText returns the entity's main text for the byte and token
// accounting in the batch summary.
func entityText(e gleaner.Entity) string {
	switch v := e.(type) {
	case *gleaner.Article:
		return v.TextContent
	case *gleaner.Video:
		return v.Description
	case *gleaner.Audio:
		return v.Description
	case *gleaner.Person:
		return v.Details
	case *gleaner.Organization:
		return v.Description
	case *gleaner.Location:
		return v.Name
	case *gleaner.Poll:
		return v.Question
	case *gleaner.Fact:
		return v.Statement
	case *gleaner.NewsAlert:
		return v.Description
	case *gleaner.LegalDocument:
		return v.Title
	case *gleaner.Jurisdiction:
		return v.Name
	case *gleaner.NewsEvent:
		return v.Description
	case *gleaner.NewsStory:
		return v.Summary
	case *gleaner.SocialMediaPost:
		return v.Content
	case *gleaner.Source:
		return v.Description
	default:
		return ""
	}
}
