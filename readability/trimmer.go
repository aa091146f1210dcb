package readability

import (
	"strings"

	"github.com/fwojciec/gleaner"
	"github.com/go-shiori/go-readability"
)

// Ensure Trimmer implements gleaner.Trimmer at compile time.
var _ gleaner.Trimmer = (*Trimmer)(nil)

// Trimmer wraps go-readability to reduce a page to its main content.
// Alternative to the trafilatura trimmer; readability is more permissive
// on sparse pages.
type Trimmer struct{}

// NewTrimmer creates a new Trimmer.
func NewTrimmer() *Trimmer {
	return &Trimmer{}
}

// Trim processes raw HTML and returns the main-content HTML.
func (t *Trimmer) Trim(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", gleaner.Errorf(gleaner.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(article.Content) == "" {
		return "", gleaner.Errorf(gleaner.ENOTFOUND, "no main content found")
	}

	return article.Content, nil
}
