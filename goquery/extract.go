package goquery

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gleaner"
)

// fieldCandidate is one entry in a field's ordered selector chain. When
// Attr is empty the matched element's text is the value, otherwise the
// named attribute is read.
type fieldCandidate struct {
	Selector string
	Attr     string
}

// dateLayouts are tried in order when parsing date strings. ISO-8601
// variants come first, display formats last.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
}

// firstText returns the first non-empty value produced by the candidate
// chain, in order. No merging across candidates: the first hit wins.
func firstText(t *Target, candidates []fieldCandidate) (string, bool) {
	for _, c := range candidates {
		if value := candidateValue(t, c); value != "" {
			return value, true
		}
	}
	return "", false
}

// firstCategoryText is firstText with the target's learned selector for
// the category, when present, tried ahead of the built-in chain.
func firstCategoryText(t *Target, category gleaner.ContentCategory, candidates []fieldCandidate) (string, bool) {
	return firstText(t, withLearned(t, category, candidates))
}

// firstCategoryBlock is like firstCategoryText but renders element
// matches as paragraph-separated text, for body-content fields where
// paragraph structure matters downstream.
func firstCategoryBlock(t *Target, category gleaner.ContentCategory, candidates []fieldCandidate) (string, bool) {
	for _, c := range withLearned(t, category, candidates) {
		sel := t.Find(c.Selector).First()
		if sel.Length() == 0 {
			continue
		}
		var value string
		if c.Attr == "" {
			value = paragraphText(sel)
		} else {
			raw, _ := sel.Attr(c.Attr)
			value = strings.TrimSpace(raw)
		}
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// firstDate resolves the candidate chain to a value and parses it
// through the known date layouts. Optional date fields resolve to nil
// rather than erroring when nothing matches or the value is unparseable.
func firstDate(t *Target, category gleaner.ContentCategory, candidates []fieldCandidate) *time.Time {
	value, ok := firstCategoryText(t, category, candidates)
	if !ok {
		return nil
	}
	ts, ok := parseDate(value)
	if !ok {
		return nil
	}
	return &ts
}

// allTexts returns the collapsed text of every element matched by the
// selector, skipping empties, in document order.
func allTexts(t *Target, selector string) []string {
	var out []string
	t.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if text := collapseSpace(sel.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// candidateValue evaluates a single candidate against the target.
func candidateValue(t *Target, c fieldCandidate) string {
	sel := t.Find(c.Selector).First()
	if sel.Length() == 0 {
		return ""
	}
	if c.Attr == "" {
		return collapseSpace(sel.Text())
	}
	value, _ := sel.Attr(c.Attr)
	return strings.TrimSpace(value)
}

// withLearned prepends the target's learned selector for the category,
// when one is set, expanded with the category's conventional attribute
// access so learned selectors work for attribute-carried values too.
func withLearned(t *Target, category gleaner.ContentCategory, candidates []fieldCandidate) []fieldCandidate {
	learned, ok := t.learned.Selector(category)
	if !ok {
		return candidates
	}
	return append(learnedCandidates(category, learned), candidates...)
}

func learnedCandidates(category gleaner.ContentCategory, selector string) []fieldCandidate {
	switch category {
	case gleaner.CategoryImage:
		return []fieldCandidate{{selector, "src"}, {selector, "content"}, {selector, ""}}
	case gleaner.CategoryDate:
		return []fieldCandidate{{selector, "datetime"}, {selector, "content"}, {selector, ""}}
	default:
		return []fieldCandidate{{selector, ""}, {selector, "content"}}
	}
}

// paragraphText renders a selection as paragraph-separated text. When
// the selection owns <p> descendants their texts are joined with blank
// lines; otherwise the selection's own collapsed text is used.
func paragraphText(sel *goquery.Selection) string {
	var parts []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := collapseSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return collapseSpace(sel.Text())
	}
	return strings.Join(parts, "\n\n")
}

// parseDate tries each known layout in order.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseCount extracts an integer from text that may carry grouping
// characters or labels ("1,204 votes" becomes 1204). Counts default to
// zero when nothing numeric is present.
func parseCount(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// parseDecimal extracts a decimal number from text that may carry
// labels or symbols ("±3.5%" becomes 3.5). Returns nil when nothing
// parseable is present; absence propagates for non-count numerics.
func parseDecimal(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseDurationSeconds handles ISO-8601 durations ("PT1H2M30S") and
// bare second counts ("90"). Returns 0 when nothing usable is present.
func parseDurationSeconds(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if secs, ok := parseISODuration(s); ok {
		return secs
	}
	return parseCount(s)
}

func parseISODuration(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok || rest == "" {
		return 0, false
	}

	total := 0
	num := ""
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H' || r == 'M' || r == 'S':
			if num == "" {
				return 0, false
			}
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0, false
			}
			switch r {
			case 'H':
				total += n * 3600
			case 'M':
				total += n * 60
			case 'S':
				total += n
			}
			num = ""
		default:
			return 0, false
		}
	}
	if num != "" {
		return 0, false
	}
	return total, true
}

// collapseSpace trims and collapses whitespace runs to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
