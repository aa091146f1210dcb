package main

import (
	"fmt"

	"github.com/fwojciec/gleaner"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	categories := gleaner.ContentCategories()
	if c.Category != "" {
		category := gleaner.ContentCategory(c.Category)
		if !validCategory(category) {
			err := gleaner.Errorf(gleaner.EINVALID, "unknown category %q", c.Category)
			fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
			return err
		}
		categories = []gleaner.ContentCategory{category}
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	for _, category := range categories {
		candidates, err := deps.Discoverer.Discover(html, category)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
			return err
		}
		if c.Top > 0 && len(candidates) > c.Top {
			candidates = candidates[:c.Top]
		}
		if len(candidates) == 0 {
			fmt.Fprintf(deps.Stdout, "%s  (no candidates)\n", category)
			continue
		}
		for _, candidate := range candidates {
			fmt.Fprintf(deps.Stdout, "%s  %.2f  %s\n", category, candidate.Score, candidate.Selector)
		}
	}
	return nil
}

func validCategory(category gleaner.ContentCategory) bool {
	for _, known := range gleaner.ContentCategories() {
		if category == known {
			return true
		}
	}
	return false
}
