package main

import (
	"fmt"

	"github.com/fwojciec/gleaner"
)

// Run executes the "cache list" command.
func (c *CacheListCmd) Run(deps *Dependencies) error {
	domains := deps.Cache.Domains()
	if len(domains) == 0 {
		fmt.Fprintln(deps.Stdout, "No learned selectors. Use 'gleaner learn' to add some.")
		return nil
	}

	for _, domain := range domains {
		set, ok := deps.Cache.Lookup(domain)
		if !ok {
			continue
		}
		fmt.Fprintln(deps.Stdout, domain)
		printSelectorSet(deps.Stdout, set)
	}
	return nil
}

// Run executes the "cache clear" command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm clearing\n")
		return gleaner.Errorf(gleaner.EINVALID, "use --force to confirm clearing")
	}

	cleared := len(deps.Cache.Domains())
	deps.Cache.Clear()
	if err := deps.Selectors.SaveAll(deps.Ctx, deps.Cache.Snapshot()); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cleared selectors for %d domains\n", cleared)
	return nil
}
