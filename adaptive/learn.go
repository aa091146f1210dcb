package adaptive

import (
	"github.com/fwojciec/gleaner"
)

// Learner turns selector discovery into learned per-domain selector
// sets. Learning is deliberate: it runs only when asked, typically from
// an operator command after eyeballing a sample page, never as a side
// effect of extraction.
type Learner struct {
	Discoverer gleaner.SelectorDiscoverer
	Validator  gleaner.ContentValidator
	Cache      gleaner.SelectorCache

	// MinScore rejects discovery candidates scoring below it. Zero
	// accepts everything.
	MinScore float64
}

// LearnDomain discovers a selector set from a sample page and records it
// for the page's domain. The learned set is returned for inspection.
func (l *Learner) LearnDomain(html, sourceURL string) (gleaner.SelectorSet, error) {
	domain := gleaner.Domain(sourceURL)
	if domain == "" {
		return gleaner.SelectorSet{}, gleaner.Errorf(gleaner.EINVALID, "cannot learn selectors without a domain: %q", sourceURL)
	}
	set, err := l.DiscoverSet(html)
	if err != nil {
		return gleaner.SelectorSet{}, err
	}
	if err := l.Cache.Learn(domain, set); err != nil {
		return gleaner.SelectorSet{}, err
	}
	return set, nil
}

// DiscoverSet builds the best selector set for a page without recording
// it. Per category it takes the highest-scored element candidate whose
// sample text passes validation; categories with no acceptable candidate
// stay empty. Structured-data candidates are skipped: they point at the
// JSON-LD script block, which the field extractors cannot read values
// out of.
func (l *Learner) DiscoverSet(html string) (gleaner.SelectorSet, error) {
	var set gleaner.SelectorSet
	for _, category := range gleaner.ContentCategories() {
		candidates, err := l.Discoverer.Discover(html, category)
		if err != nil {
			return gleaner.SelectorSet{}, err
		}
		selector, ok := l.pickCandidate(candidates, category)
		if !ok {
			continue
		}
		switch category {
		case gleaner.CategoryTitle:
			set.Title = selector
		case gleaner.CategoryContent:
			set.Content = selector
		case gleaner.CategoryAuthor:
			set.Author = selector
		case gleaner.CategoryDate:
			set.Date = selector
		case gleaner.CategoryImage:
			set.Image = selector
		case gleaner.CategorySection:
			set.Section = selector
		}
	}
	if set.IsEmpty() {
		return gleaner.SelectorSet{}, gleaner.Errorf(gleaner.ENOTFOUND, "no selectors discovered")
	}
	return set, nil
}

func (l *Learner) pickCandidate(candidates []gleaner.ScoredSelector, category gleaner.ContentCategory) (string, bool) {
	for _, c := range candidates {
		if c.Score < l.MinScore {
			// Candidates are sorted by descending score.
			return "", false
		}
		if c.Metadata["strategy"] == "structured-data" {
			continue
		}
		if l.Validator != nil {
			if result := l.Validator.Validate(c.Metadata["text"], category); !result.Valid {
				continue
			}
		}
		return c.Selector, true
	}
	return "", false
}
