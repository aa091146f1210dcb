package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/gleaner"
	"github.com/fwojciec/gleaner/adaptive"
)

// Run executes the learn command.
func (c *LearnCmd) Run(deps *Dependencies) error {
	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	learner := &adaptive.Learner{
		Discoverer: deps.Discoverer,
		Validator:  deps.Validator,
		Cache:      deps.Cache,
		MinScore:   c.MinScore,
	}

	if c.DryRun {
		set, err := learner.DiscoverSet(html)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
			return err
		}
		printSelectorSet(deps.Stdout, set)
		return nil
	}

	set, err := learner.LearnDomain(html, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}
	if err := deps.Selectors.SaveAll(deps.Ctx, deps.Cache.Snapshot()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Learned selectors for %q\n", gleaner.Domain(c.URL))
	printSelectorSet(deps.Stdout, set)
	return nil
}

// printSelectorSet writes one line per filled selector slot.
func printSelectorSet(w io.Writer, set gleaner.SelectorSet) {
	for _, category := range gleaner.ContentCategories() {
		if selector, ok := set.Selector(category); ok {
			fmt.Fprintf(w, "  %s: %s\n", category, selector)
		}
	}
}
