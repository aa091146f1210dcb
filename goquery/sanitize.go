package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gleaner"
)

var _ gleaner.Sanitizer = (*Sanitizer)(nil)

// junkTags never carry article content. Header and footer elements are
// only junk outside article or main: news CMSes routinely put the
// headline inside an article-level <header>.
const junkTags = "script, style, noscript, iframe, form, button, nav, aside"

// exactJunkClasses match a whole class or id token. Short words stay
// exact so "ad" cannot match "shadow" or "download".
var exactJunkClasses = map[string]bool{
	"ad":  true,
	"ads": true,
}

// junkClassWords match anywhere inside a class or id token.
var junkClassWords = []string{
	"advert", "sponsor", "promo", "social", "share", "newsletter",
	"subscribe", "popup", "modal", "cookie", "tracking", "analytics",
	"comment", "related", "recommend", "sidebar", "banner", "widget",
}

// mainRegionSelectors are tried in order when narrowing the body to its
// main content region.
var mainRegionSelectors = []string{
	"article",
	"main",
	"[role='main']",
	".article-body",
	".article-content",
	".story-body",
	".post-content",
	".entry-content",
	"#content",
	".content",
}

// Sanitizer cleans fetched HTML before extraction: drops non-content
// elements and risky attributes, then narrows the body to the main
// content region. The head is preserved so meta-based selector
// candidates keep working on the sanitized document.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize returns a cleaned rendering of html. Output size never
// exceeds input size in DOM terms: sanitization only removes.
func (s *Sanitizer) Sanitize(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", gleaner.Errorf(gleaner.EINVALID, "empty HTML document")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", gleaner.Errorf(gleaner.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(junkTags).Remove()
	doc.Find("header, footer").Each(func(_ int, sel *goquery.Selection) {
		if sel.Closest("article, main").Length() == 0 {
			sel.Remove()
		}
	})
	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		switch goquery.NodeName(sel) {
		case "html", "head", "body":
			return
		}
		if junkClassOrID(sel) {
			sel.Remove()
		}
	})
	stripAttributes(doc)
	narrowToMainContent(doc)

	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return "", gleaner.Errorf(gleaner.EINTERNAL, "failed to render sanitized HTML: %v", err)
	}
	return out, nil
}

func junkClassOrID(sel *goquery.Selection) bool {
	id, _ := sel.Attr("id")
	class, _ := sel.Attr("class")
	for _, token := range strings.Fields(strings.ToLower(class + " " + id)) {
		if exactJunkClasses[token] {
			return true
		}
		for _, word := range junkClassWords {
			if strings.Contains(token, word) {
				return true
			}
		}
	}
	return false
}

// stripAttributes drops inline event handlers, inline styles, and data-*
// attributes everywhere in the document.
func stripAttributes(doc *goquery.Document) {
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		kept := node.Attr[:0]
		for _, attr := range node.Attr {
			if keepAttribute(attr.Key) {
				kept = append(kept, attr)
			}
		}
		node.Attr = kept
	})
}

func keepAttribute(key string) bool {
	key = strings.ToLower(key)
	if key == "style" {
		return false
	}
	if strings.HasPrefix(key, "on") || strings.HasPrefix(key, "data-") {
		return false
	}
	return true
}

// narrowToMainContent replaces the body's children with the narrowest
// region that looks like main content. When no region matches, the full
// sanitized body stands.
func narrowToMainContent(doc *goquery.Document) {
	body := doc.Find("body")
	if body.Length() == 0 {
		return
	}
	for _, selector := range mainRegionSelectors {
		region := doc.Find(selector).First()
		if region.Length() == 0 || strings.TrimSpace(region.Text()) == "" {
			continue
		}
		regionHTML, err := goquery.OuterHtml(region)
		if err != nil {
			return
		}
		body.SetHtml(regionHTML)
		return
	}
}
