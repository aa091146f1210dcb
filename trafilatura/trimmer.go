package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/gleaner"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Trimmer implements gleaner.Trimmer at compile time.
var _ gleaner.Trimmer = (*Trimmer)(nil)

// Trimmer wraps go-trafilatura to reduce a page to its main content.
// It is the default prompt trimmer: fallback prompts carry the article
// region instead of the whole page.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}
	if result.ContentNode == nil {
		return "", gleaner.Errorf(gleaner.ENOTFOUND, "no main content found")
	}

	return renderNode(result.ContentNode)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
