package goquery

import (
	"strings"

	"github.com/fwojciec/gleaner"
	"github.com/google/uuid"
)

var _ Extractor = (*NewsAlertExtractor)(nil)

var (
	alertTitleChain = []fieldCandidate{
		{"[itemprop='headline']", ""},
		{".alert-title", ""},
		{".warning-title", ""},
		{".breaking-title", ""},
		{"h1", ""},
		{"meta[property='og:title']", "content"},
		{"title", ""},
	}
	alertDescriptionChain = []fieldCandidate{
		{"[itemprop='description']", ""},
		{".alert-description", ""},
		{".alert-message", ""},
		{".warning-text", ""},
		{".alert-body", ""},
		{"article p", ""},
		{"p", ""},
		{"meta[name='description']", "content"},
	}
	alertTypeChain = []fieldCandidate{
		{".alert-type", ""},
		{".warning-type", ""},
		{".alert-category", ""},
	}
	alertSeverityChain = []fieldCandidate{
		{"[itemprop='severity']", ""},
		{".alert-severity", ""},
		{".severity", ""},
		{".alert-level", ""},
	}
	alertDateChain = []fieldCandidate{
		{"[itemprop='datePublished']", "content"},
		{"[itemprop='datePublished']", ""},
		{"time[datetime]", "datetime"},
		{".alert-date", ""},
		{".issued", ""},
	}
	alertSourceChain = []fieldCandidate{
		{"[itemprop='provider']", ""},
		{".alert-source", ""},
		{".source", ""},
	}
)

// NewsAlertExtractor extracts a time-sensitive alert, such as a weather
// warning or a breaking-news banner, from a page.
type NewsAlertExtractor struct{}

// NewNewsAlertExtractor creates a new NewsAlertExtractor.
func NewNewsAlertExtractor() *NewsAlertExtractor {
	return &NewsAlertExtractor{}
}

// EntityType returns the type this extractor produces.
func (e *NewsAlertExtractor) EntityType() gleaner.EntityType {
	return gleaner.EntityNewsAlert
}

// Extract parses a NewsAlert from the target. Title and description are
// required. Severity defaults to medium when the page does not state one.
func (e *NewsAlertExtractor) Extract(target *Target) (gleaner.Entity, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	title, ok := firstCategoryText(target, gleaner.CategoryTitle, alertTitleChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "news alert: no title found")
	}

	description, ok := firstCategoryText(target, gleaner.CategoryContent, alertDescriptionChain)
	if !ok {
		return nil, gleaner.Errorf(gleaner.ENOTFOUND, "news alert: no description found")
	}

	alert := &gleaner.NewsAlert{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Severity:    gleaner.SeverityMedium,
		DateIssued:  firstDate(target, gleaner.CategoryDate, alertDateChain),
	}
	alert.AlertType, _ = firstText(target, alertTypeChain)
	alert.Source, _ = firstText(target, alertSourceChain)
	if raw, ok := firstText(target, alertSeverityChain); ok {
		alert.Severity = normalizeSeverity(raw)
	}
	return alert, nil
}

// normalizeSeverity maps free-form severity wording onto the four
// recognized levels. Unrecognized wording lands on medium.
func normalizeSeverity(raw string) gleaner.AlertSeverity {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "critical", "extreme", "emergency":
		return gleaner.SeverityCritical
	case "high", "severe", "major":
		return gleaner.SeverityHigh
	case "low", "minor", "advisory":
		return gleaner.SeverityLow
	default:
		return gleaner.SeverityMedium
	}
}
