package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/gleaner"
)

// Ensure FeedService implements gleaner.FeedService.
var _ gleaner.FeedService = (*FeedService)(nil)

// FeedService discovers article URLs from RSS and Atom feeds via HTTP.
type FeedService struct {
	client *http.Client
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client}
}

// DiscoverURLs returns the item URLs of the feed in document order,
// deduplicated. Relative item URLs are resolved against the feed URL.
// Returns an empty slice (not nil) when the feed has no items.
func (s *FeedService) DiscoverURLs(ctx context.Context, feedURL string, filter *gleaner.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(feedURL)
	if err != nil {
		return nil, gleaner.Errorf(gleaner.EINVALID, "invalid feed URL: %v", err)
	}

	body, err := s.fetchURL(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, gleaner.Errorf(gleaner.EINVALID, "parsing feed XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, gleaner.Errorf(gleaner.EINVALID, "feed has no root element")
	}

	var raw []string
	switch root.Tag {
	case "rss":
		raw = rssItemURLs(root)
	case "feed":
		raw = atomEntryURLs(root)
	default:
		return nil, gleaner.Errorf(gleaner.EINVALID, "unrecognized feed format %q", root.Tag)
	}

	urls := []string{}
	seen := make(map[string]bool)
	for _, item := range raw {
		resolved := resolveURL(base, item)
		if resolved == "" || seen[resolved] {
			continue
		}
		seen[resolved] = true
		if filter.Match(resolved) {
			urls = append(urls, resolved)
		}
	}

	return urls, nil
}

// rssItemURLs extracts channel item links from an RSS 2.0 document.
func rssItemURLs(root *etree.Element) []string {
	var urls []string
	for _, item := range root.FindElements("./channel/item") {
		link := item.SelectElement("link")
		if link == nil {
			continue
		}
		if text := strings.TrimSpace(link.Text()); text != "" {
			urls = append(urls, text)
		}
	}
	return urls
}

// atomEntryURLs extracts entry links from an Atom document. Entries can
// carry several links; the alternate (or unqualified) one is the article.
func atomEntryURLs(root *etree.Element) []string {
	var urls []string
	for _, entry := range root.FindElements("./entry") {
		for _, link := range entry.SelectElements("link") {
			rel := link.SelectAttrValue("rel", "")
			if rel != "" && rel != "alternate" {
				continue
			}
			if href := strings.TrimSpace(link.SelectAttrValue("href", "")); href != "" {
				urls = append(urls, href)
				break
			}
		}
	}
	return urls
}

func resolveURL(base *url.URL, raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// fetchURL retrieves a URL and returns the response body.
func (s *FeedService) fetchURL(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, gleaner.Errorf(gleaner.EINVALID, "creating request for %s: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, gleaner.Errorf(gleaner.EUNAVAILABLE, "fetching feed %s: %v", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, gleaner.Errorf(gleaner.EUNAVAILABLE, "fetching feed %s: status %d", rawURL, resp.StatusCode)
	}

	return resp.Body, nil
}
