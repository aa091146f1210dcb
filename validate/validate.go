// Package validate scores extracted strings against per-category quality
// rules. The validator is pure and never fails: callers decide what to do
// with a low score, typically refusing to learn a selector from it.
package validate

import (
	"strings"
	"time"
	"unicode"

	"github.com/fwojciec/gleaner"
)

var _ gleaner.ContentValidator = (*Validator)(nil)

// rule is one quality check. Error-severity rules force invalidity;
// warnings subtract their penalty and only invalidate when the score
// compounds to zero.
type rule struct {
	kind     string
	severity gleaner.ValidationSeverity
	penalty  float64
	message  string
	check    func(text string) bool
}

// Validator scores extracted content. The zero value is not usable; use
// NewValidator.
type Validator struct {
	rules map[gleaner.ContentCategory][]rule
}

// NewValidator creates a Validator with the built-in rule sets.
func NewValidator() *Validator {
	return &Validator{rules: map[gleaner.ContentCategory][]rule{
		gleaner.CategoryTitle: {
			{"too_short", gleaner.SeverityWarning, 0.25, "title is implausibly short", func(s string) bool { return len(s) < 5 }},
			{"too_long", gleaner.SeverityWarning, 0.25, "title is implausibly long", func(s string) bool { return len(s) > 300 }},
			{"all_uppercase", gleaner.SeverityWarning, 0.25, "title is entirely uppercase", allUppercase},
			{"embedded_url", gleaner.SeverityWarning, 0.25, "title contains a URL", containsURL},
			{"placeholder", gleaner.SeverityWarning, 0.5, "title looks like a placeholder or error page", placeholderTitle},
		},
		gleaner.CategoryContent: {
			{"too_short", gleaner.SeverityWarning, 0.25, "content is shorter than a plausible article body", func(s string) bool { return len(s) < 200 }},
			{"few_paragraphs", gleaner.SeverityWarning, 0.25, "content has fewer than two paragraphs", func(s string) bool { return paragraphCount(s) < 2 }},
			{"all_uppercase", gleaner.SeverityWarning, 0.25, "content is entirely uppercase", allUppercase},
			{"boilerplate", gleaner.SeverityWarning, 0.5, "content looks like boilerplate, not an article", boilerplate},
		},
		gleaner.CategoryAuthor: {
			{"too_short", gleaner.SeverityWarning, 0.25, "author name is implausibly short", func(s string) bool { return len(s) < 3 }},
			{"too_long", gleaner.SeverityWarning, 0.25, "author name is implausibly long", func(s string) bool { return len(s) > 100 }},
			{"embedded_url", gleaner.SeverityWarning, 0.5, "author contains a URL", containsURL},
			{"digits", gleaner.SeverityWarning, 0.25, "author contains digits", containsDigit},
		},
		gleaner.CategoryDate: {
			{"unparseable", gleaner.SeverityWarning, 0.5, "date does not parse in any known layout", func(s string) bool { _, ok := parseDate(s); return !ok }},
			{"future", gleaner.SeverityWarning, 0.25, "date is in the future", futureDate},
			{"ancient", gleaner.SeverityWarning, 0.25, "date predates modern publishing", ancientDate},
		},
		gleaner.CategoryImage: {
			{"non_http_url", gleaner.SeverityWarning, 0.5, "image URL is not absolute http(s)", func(s string) bool {
				return !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://")
			}},
			{"tracking_pixel", gleaner.SeverityWarning, 0.5, "image URL looks like a tracking pixel", trackingPixel},
		},
		gleaner.CategorySection: {
			{"too_long", gleaner.SeverityWarning, 0.25, "section label is implausibly long", func(s string) bool { return len(s) > 50 }},
			{"embedded_url", gleaner.SeverityWarning, 0.5, "section contains a URL", containsURL},
		},
	}}
}

// Validate scores text for the category. An empty or whitespace-only
// value is an error-severity issue and is always invalid with score 0.
func (v *Validator) Validate(text string, category gleaner.ContentCategory) gleaner.ValidationResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return gleaner.ValidationResult{
			Valid: false,
			Score: 0,
			Issues: []gleaner.ValidationIssue{{
				Kind:     "empty",
				Severity: gleaner.SeverityError,
				Message:  "required content is empty",
			}},
		}
	}

	score := 1.0
	var issues []gleaner.ValidationIssue
	for _, r := range v.rules[category] {
		if !r.check(trimmed) {
			continue
		}
		score -= r.penalty
		issues = append(issues, gleaner.ValidationIssue{
			Kind:     r.kind,
			Severity: r.severity,
			Message:  r.message,
		})
	}
	if score <= 0 {
		return gleaner.ValidationResult{Valid: false, Score: 0, Issues: issues}
	}
	return gleaner.ValidationResult{Valid: true, Score: score, Issues: issues}
}

func allUppercase(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return letters >= 10
}

func containsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "http://") ||
		strings.Contains(lower, "https://") ||
		strings.Contains(lower, "www.")
}

func containsDigit(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func placeholderTitle(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range []string{"untitled", "page not found", "404", "access denied"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func boilerplate(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range []string{"enable javascript", "subscribe to continue", "accept cookies"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func paragraphCount(s string) int {
	count := 0
	for _, part := range strings.Split(s, "\n\n") {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// dateLayouts mirror the layouts the structural extractors accept, so a
// date that extracts also validates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func futureDate(s string) bool {
	ts, ok := parseDate(s)
	if !ok {
		return false
	}
	return ts.After(time.Now().Add(24 * time.Hour))
}

func ancientDate(s string) bool {
	ts, ok := parseDate(s)
	if !ok {
		return false
	}
	return ts.Year() < 1900
}

func trackingPixel(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "pixel") || strings.Contains(lower, "1x1")
}
