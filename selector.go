package gleaner

import "strings"

// ContentCategory names a kind of page content that selector discovery,
// validation, and the fallback extractor all understand.
type ContentCategory string

// Recognized content categories.
const (
	CategoryTitle   ContentCategory = "title"
	CategoryContent ContentCategory = "content"
	CategoryAuthor  ContentCategory = "author"
	CategoryDate    ContentCategory = "date"
	CategoryImage   ContentCategory = "image"
	CategorySection ContentCategory = "section"
)

// ContentCategories returns all recognized categories in stable order.
func ContentCategories() []ContentCategory {
	return []ContentCategory{
		CategoryTitle, CategoryContent, CategoryAuthor,
		CategoryDate, CategoryImage, CategorySection,
	}
}

// SelectorSet bundles the per-field CSS selectors believed to work for a
// domain. An empty string means "no selector for this slot"; a present
// slot is never the empty string (Validate enforces this).
type SelectorSet struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Author  string `json:"author,omitempty"`
	Date    string `json:"date,omitempty"`
	Image   string `json:"image,omitempty"`
	Section string `json:"section,omitempty"`
}

// Selector returns the selector for the given category and whether the
// slot is filled.
func (s SelectorSet) Selector(category ContentCategory) (string, bool) {
	var sel string
	switch category {
	case CategoryTitle:
		sel = s.Title
	case CategoryContent:
		sel = s.Content
	case CategoryAuthor:
		sel = s.Author
	case CategoryDate:
		sel = s.Date
	case CategoryImage:
		sel = s.Image
	case CategorySection:
		sel = s.Section
	}
	return sel, sel != ""
}

// IsEmpty reports whether no slot is filled.
func (s SelectorSet) IsEmpty() bool {
	return s.Title == "" && s.Content == "" && s.Author == "" &&
		s.Date == "" && s.Image == "" && s.Section == ""
}

// Validate returns an error if the set is empty or any present slot is
// whitespace. Absent slots are empty strings, never blank selectors.
func (s SelectorSet) Validate() error {
	if s.IsEmpty() {
		return Errorf(EINVALID, "selector set has no selectors")
	}
	for _, sel := range []string{s.Title, s.Content, s.Author, s.Date, s.Image, s.Section} {
		if sel != "" && strings.TrimSpace(sel) == "" {
			return Errorf(EINVALID, "selector set contains a blank selector")
		}
	}
	return nil
}

// ScoredSelector is one candidate selector produced by discovery, with a
// confidence score in [0,1] and free-form metadata (matched text excerpt,
// matched attributes, the discovery strategy). Value type: produced fresh
// per discovery call and never mutated afterward.
type ScoredSelector struct {
	Selector string            `json:"selector"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SelectorDiscoverer proposes scored selector candidates for a content
// category on a document whose markup is unfamiliar.
type SelectorDiscoverer interface {
	// Discover returns candidates sorted by descending score. Running it
	// twice on the same document yields the same ordered list.
	Discover(html string, category ContentCategory) ([]ScoredSelector, error)
}

// SelectorCache maps a domain (URL host) to the most recently learned
// SelectorSet for it. Implementations must be safe for concurrent readers
// with a single learning writer per domain key; concurrent learns for the
// same domain are last-write-wins. Lookup returns a value copy, so a
// parse holding a snapshot is never invalidated by a later Learn.
type SelectorCache interface {
	// Lookup returns the learned set for the domain, if any.
	Lookup(domain string) (SelectorSet, bool)

	// Learn records the set for the domain, replacing any previous set.
	// Returns EINVALID if the set fails validation.
	Learn(domain string, set SelectorSet) error

	// Clear discards all learned sets.
	Clear()
}
