package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/gleaner"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	typ := gleaner.EntityType(c.Type)
	if !typ.Valid() {
		err := gleaner.Errorf(gleaner.EINVALID, "unknown entity type %q", c.Type)
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	outcome, err := deps.Parser.ParseEntity(deps.Ctx, html, c.URL, typ)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
		return err
	}

	if c.Format == "markdown" {
		md, err := deps.Converter.Convert(html)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gleaner.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, strings.TrimSpace(md))
		return nil
	}

	out := struct {
		EntityType gleaner.EntityType `json:"entityType"`
		Provenance gleaner.Provenance `json:"provenance"`
		Entity     gleaner.Entity     `json:"entity"`
	}{
		EntityType: typ,
		Provenance: outcome.Provenance,
		Entity:     outcome.Entity,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
