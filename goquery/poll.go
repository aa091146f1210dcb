package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*PollExtractor)(nil)

var (
	pollQuestionChain = []fieldCandidate{
		{"[itemprop='question']", ""},
		{".poll-question", ""},
		{".question", ""},
		{"h1", ""},
		{"h2", ""},
	}
	pollSourceChain = []fieldCandidate{
		{"[itemprop='sourceOrganization']", ""},
		{".poll-source", ""},
		{".source", ""},
		{"cite", ""},
	}
	pollDateChain = []fieldCandidate{
		{"[itemprop='dateCreated']", "content"},
		{"[itemprop='dateCreated']", ""},
		{"time[datetime]", "datetime"},
		{".poll-date", ""},
	}
	pollSampleSizeChain = []fieldCandidate{
		{"[itemprop='sampleSize']", ""},
		{".sample-size", ""},
	}
	pollMarginChain = []fieldCandidate{
		{"[itemprop='marginOfError']", ""},
		{".margin-of-error", ""},
		{".margin", ""},
	}

	// Option rows are probed in order; the first selector that matches
	// any elements supplies all options, with the vote count read from
	// the matching votes selector inside each row.
	pollOptionSelectors = []struct {
		Option string
		Votes  string
	}{
		{"[itemprop='option']", "[itemprop='votes']"},
		{".poll-option", ".votes, .vote-count"},
		{".poll-options li", ".votes, .vote-count"},
	}
)

// PollExtractor extracts an opinion poll from a page.
type PollExtractor struct{}

// NewPollExtractor creates a new PollExtractor.
func NewPollExtractor() *PollExtractor {
	return &PollExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *PollExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityPoll
}

// Extract parses a Poll from the target. The question is required.
// Vote counts tolerate grouping characters ("1,204" reads as 1204) and
// default to zero when a row carries no count.
func (e *PollExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	question, ok := firstCategoryText(target, gleaner.CategoryTitle, pollQuestionChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "poll: no question found")
	}

	poll := &gleaner.Poll{
		ID:            uuid.New().String(),
		Question:      question,
		Options:       extractPollOptions(target),
		DateConducted: firstDate(target, gleaner.CategoryDate, pollDateChain),
	}
	poll.Source, _ = firstText(target, pollSourceChain)
	if raw, ok := firstText(target, pollSampleSizeChain); ok {
		poll.SampleSize = parseCount(raw)
	}
	if raw, ok := firstText(target, pollMarginChain); ok {
		poll.MarginOfError = parseDecimal(raw)
	}
	return poll, nil
}

func extractPollOptions(target *Target) []gleaner.PollOption {
	for _, probe := range pollOptionSelectors {
		rows := target.Find(probe.Option)
		if rows.Length() == 0 {
			continue
		}

		var options []gleaner.PollOption
		rows.Each(func(_ int, row *goquery.Selection) {
			votes := parseCount(row.Find(probe.Votes).First().Text())

			// The option label is the row text with the vote count
			// element excluded, so "Yes 1,204" reads as "Yes".
			label := row.Clone()
			label.Find(probe.Votes).Remove()
			text := collapseSpace(label.Text())
			if text == "" {
				return
			}

			options = append(options, gleaner.PollOption{Text: text, Votes: votes})
		})
		if len(options) > 0 {
			return options
		}
	}
	return nil
}
