package goquery

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gleaner"
)

var _ gleaner.SelectorDiscoverer = (*Discoverer)(nil)

// Discovery strategies, in tie-break priority order: structured data
// beats common patterns beats keyword probing when scores are equal.
const (
	strategyStructured = "structured-data"
	strategyCommon     = "common-pattern"
	strategyKeyword    = "keyword"
)

var strategyBase = map[string]float64{
	strategyStructured: 0.70,
	strategyCommon:     0.35,
	strategyKeyword:    0.30,
}

var strategyPriority = map[string]int{
	strategyStructured: 3,
	strategyCommon:     2,
	strategyKeyword:    1,
}

// commonPatterns are selectors that news CMSes converge on, probed as-is.
var commonPatterns = map[gleaner.ContentCategory][]string{
	gleaner.CategoryTitle: {
		"h1", ".article-title", ".headline", ".entry-title", ".post-title",
		"meta[property='og:title']", "title",
	},
	gleaner.CategoryContent: {
		"article", ".article-body", ".article-content", ".post-content",
		".story-body", ".entry-content", "main",
	},
	gleaner.CategoryAuthor: {
		".author", ".byline", "[rel='author']", "[itemprop='author']",
		"meta[name='author']",
	},
	gleaner.CategoryDate: {
		"time[datetime]", "[itemprop='datePublished']", ".published-date",
		".date", "meta[property='article:published_time']",
	},
	gleaner.CategoryImage: {
		"meta[property='og:image']", "[itemprop='image']", "figure img",
		"article img",
	},
	gleaner.CategorySection: {
		"[itemprop='articleSection']", ".category", ".section",
		"meta[property='article:section']",
	},
}

// categoryKeywords drive class/id probing and the corroboration bonus.
var categoryKeywords = map[gleaner.ContentCategory][]string{
	gleaner.CategoryTitle:   {"headline", "title", "heading"},
	gleaner.CategoryContent: {"content", "body", "article", "story", "text"},
	gleaner.CategoryAuthor:  {"author", "byline", "writer"},
	gleaner.CategoryDate:    {"date", "time", "publish", "timestamp"},
	gleaner.CategoryImage:   {"image", "photo", "picture", "thumb"},
	gleaner.CategorySection: {"section", "category", "topic"},
}

// semanticTags carry category meaning on their own.
var semanticTags = map[gleaner.ContentCategory]map[string]bool{
	gleaner.CategoryTitle:   {"h1": true, "h2": true},
	gleaner.CategoryContent: {"article": true, "main": true},
	gleaner.CategoryAuthor:  {"address": true},
	gleaner.CategoryDate:    {"time": true},
	gleaner.CategoryImage:   {"img": true},
}

// structuredDataKeys are the JSON-LD keys probed per category.
var structuredDataKeys = map[gleaner.ContentCategory][]string{
	gleaner.CategoryTitle:   {"headline", "alternativeHeadline"},
	gleaner.CategoryContent: {"articleBody", "text"},
	gleaner.CategoryAuthor:  {"author", "creator"},
	gleaner.CategoryDate:    {"datePublished", "dateCreated"},
	gleaner.CategoryImage:   {"image", "thumbnailUrl"},
	gleaner.CategorySection: {"articleSection"},
}

const ldScriptSelector = "script[type='application/ld+json']"

// candidate is a pre-scoring discovery hit.
type candidate struct {
	selector string
	strategy string
	text     string
	key      string
}

// Discoverer proposes scored CSS selectors for a content category by
// probing a document three ways: common news-site patterns, elements
// whose class or id names the category, and JSON-LD structured data.
// Discovery is pure: the same document yields the same ordered list.
type Discoverer struct{}

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

// Discover returns candidates for the category sorted by descending
// score. Ties break by strategy priority, then by selector string, so
// the ordering is total and repeatable.
func (d *Discoverer) Discover(html string, category gleaner.ContentCategory) ([]gleaner.ScoredSelector, error) {
	target, err := NewTarget(html, "")
	if err != nil {
		return nil, err
	}

	var pool []candidate
	pool = append(pool, discoverCommon(target, category)...)
	pool = append(pool, discoverKeyword(target, category)...)
	pool = append(pool, discoverStructured(target, category)...)

	scored := make([]gleaner.ScoredSelector, 0, len(pool))
	for _, c := range pool {
		scored = append(scored, scoreCandidate(target, category, c))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		pi := strategyPriority[scored[i].Metadata["strategy"]]
		pj := strategyPriority[scored[j].Metadata["strategy"]]
		if pi != pj {
			return pi > pj
		}
		return scored[i].Selector < scored[j].Selector
	})

	// Same selector reachable by two strategies: keep the stronger hit.
	seen := make(map[string]bool, len(scored))
	out := scored[:0]
	for _, s := range scored {
		if seen[s.Selector] {
			continue
		}
		seen[s.Selector] = true
		out = append(out, s)
	}
	return out, nil
}

func discoverCommon(t *Target, category gleaner.ContentCategory) []candidate {
	var out []candidate
	for _, pattern := range commonPatterns[category] {
		sel := t.Find(pattern).First()
		if sel.Length() == 0 {
			continue
		}
		out = append(out, candidate{
			selector: pattern,
			strategy: strategyCommon,
			text:     selectionValue(sel),
		})
	}
	return out
}

func discoverKeyword(t *Target, category gleaner.ContentCategory) []candidate {
	keywords := categoryKeywords[category]
	var out []candidate
	seen := make(map[string]bool)
	t.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		minimal, ok := minimalSelector(sel, keywords)
		if !ok || seen[minimal] {
			return
		}
		seen[minimal] = true
		out = append(out, candidate{
			selector: minimal,
			strategy: strategyKeyword,
			text:     selectionValue(sel),
		})
	})
	return out
}

// minimalSelector builds the shortest selector for an element whose
// class or id contains one of the keywords: the id when present, else
// the matching class token, else the bare tag name.
func minimalSelector(sel *goquery.Selection, keywords []string) (string, bool) {
	id, _ := sel.Attr("id")
	class, _ := sel.Attr("class")
	matched := false
	matchedToken := ""
	for _, kw := range keywords {
		if strings.Contains(strings.ToLower(id), kw) {
			matched = true
			break
		}
		for _, token := range strings.Fields(class) {
			if strings.Contains(strings.ToLower(token), kw) {
				matched = true
				matchedToken = token
				break
			}
		}
		if matched {
			break
		}
	}
	if !matched {
		return "", false
	}
	switch {
	case id != "" && cssSafe(id):
		return "#" + id, true
	case matchedToken != "" && cssSafe(matchedToken):
		return "." + matchedToken, true
	default:
		tag := goquery.NodeName(sel)
		if tag == "" {
			return "", false
		}
		return tag, true
	}
}

// cssSafe reports whether a token can be embedded in a selector without
// escaping. Exotic tokens are skipped rather than escaped.
func cssSafe(token string) bool {
	if token == "" {
		return false
	}
	for i, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func discoverStructured(t *Target, category gleaner.ContentCategory) []candidate {
	keys := structuredDataKeys[category]
	found := make(map[string]string)
	t.Find(ldScriptSelector).Each(func(_ int, sel *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return
		}
		for _, key := range keys {
			if _, ok := found[key]; ok {
				continue
			}
			if value := findLDKey(data, key); value != "" {
				found[key] = value
			}
		}
	})

	var out []candidate
	for _, key := range keys {
		value, ok := found[key]
		if !ok {
			continue
		}
		out = append(out, candidate{
			selector: ldScriptSelector,
			strategy: strategyStructured,
			text:     value,
			key:      key,
		})
	}
	return out
}

// findLDKey walks a decoded JSON-LD document depth-first looking for
// key. Map keys are visited in sorted order so the walk is
// deterministic.
func findLDKey(data any, key string) string {
	switch v := data.(type) {
	case map[string]any:
		if raw, ok := v[key]; ok {
			if s := stringifyLD(raw); s != "" {
				return s
			}
		}
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if s := findLDKey(v[name], key); s != "" {
				return s
			}
		}
	case []any:
		for _, item := range v {
			if s := findLDKey(item, key); s != "" {
				return s
			}
		}
	}
	return ""
}

// stringifyLD reduces a JSON-LD value to text: strings pass through,
// entity objects reduce to their name or url, arrays to their first
// reducible element.
func stringifyLD(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		for _, field := range []string{"name", "url", "@id"} {
			if s, ok := val[field].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	case []any:
		for _, item := range val {
			if s := stringifyLD(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// scoreCandidate combines the strategy base with corroborating signals:
// proximity to the top of the document, a category keyword in class/id,
// a semantically matching tag, and plausible content length. Signals
// only ever add, so a candidate with more corroboration never scores
// below the same candidate with less. Scores clamp to [0,1].
func scoreCandidate(t *Target, category gleaner.ContentCategory, c candidate) gleaner.ScoredSelector {
	score := strategyBase[c.strategy]
	meta := map[string]string{"strategy": c.strategy}
	if c.key != "" {
		meta["key"] = c.key
	}
	if c.text != "" {
		meta["text"] = excerpt(c.text)
	}

	if c.strategy == strategyStructured {
		if plausibleLength(c.text, category) {
			score += 0.15
		}
		return gleaner.ScoredSelector{Selector: c.selector, Score: clampScore(score), Metadata: meta}
	}

	sel := t.Find(c.selector).First()
	if sel.Length() > 0 {
		score += proximityBonus(t, sel)
		if keywordHit(sel, category) {
			score += 0.15
		}
		if semanticTags[category][goquery.NodeName(sel)] {
			score += 0.20
		}
		if plausibleLength(c.text, category) {
			score += 0.15
		}
	}
	return gleaner.ScoredSelector{Selector: c.selector, Score: clampScore(score), Metadata: meta}
}

// proximityBonus rewards elements near the top of the body with
// diminishing returns: headlines sit high, comment sections do not.
func proximityBonus(t *Target, sel *goquery.Selection) float64 {
	if sel.Length() == 0 {
		return 0
	}
	node := sel.Get(0)
	idx := -1
	t.Find("body *").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if s.Get(0) == node {
			idx = i
			return false
		}
		return true
	})
	if idx < 0 {
		// Head elements (meta, title) carry no position signal.
		return 0
	}
	return 0.15 / (1 + 0.1*float64(idx))
}

func keywordHit(sel *goquery.Selection, category gleaner.ContentCategory) bool {
	id, _ := sel.Attr("id")
	class, _ := sel.Attr("class")
	haystack := strings.ToLower(id + " " + class)
	for _, kw := range categoryKeywords[category] {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// plausibleLength checks the matched content against the expected shape
// of the category.
func plausibleLength(text string, category gleaner.ContentCategory) bool {
	n := len(text)
	switch category {
	case gleaner.CategoryTitle:
		return n >= 20 && n <= 200
	case gleaner.CategoryContent:
		return n > 200
	case gleaner.CategoryAuthor:
		return n >= 3 && n <= 100
	case gleaner.CategoryDate:
		return n >= 6 && n <= 40
	case gleaner.CategoryImage:
		return strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://")
	case gleaner.CategorySection:
		return n >= 2 && n <= 50
	}
	return false
}

// selectionValue resolves the text a candidate element carries, looking
// in the attribute conventional for the tag before its text content.
func selectionValue(sel *goquery.Selection) string {
	switch goquery.NodeName(sel) {
	case "meta":
		content, _ := sel.Attr("content")
		return strings.TrimSpace(content)
	case "img":
		src, _ := sel.Attr("src")
		return strings.TrimSpace(src)
	case "link":
		href, _ := sel.Attr("href")
		return strings.TrimSpace(href)
	case "time":
		if dt, ok := sel.Attr("datetime"); ok {
			return strings.TrimSpace(dt)
		}
	}
	return collapseSpace(sel.Text())
}

func excerpt(s string) string {
	const max = 120
	s = collapseSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
