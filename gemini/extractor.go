package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/gleaner"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

const (
	flashModel = "gemini-2.5-flash"
	proModel   = "gemini-2.5-pro"

	// batchConcurrency bounds in-flight requests per ExtractBatch call.
	batchConcurrency = 4
)

// Ensure Extractor implements gleaner.FallbackExtractor at compile time.
var _ gleaner.FallbackExtractor = (*Extractor)(nil)

// Extractor implements gleaner.FallbackExtractor using Google Gemini.
type Extractor struct {
	client *genai.Client
}

// NewExtractor creates a new Extractor.
func NewExtractor(client *genai.Client) *Extractor {
	return &Extractor{client: client}
}

// ExtractContent asks Gemini for one content category of the page.
func (e *Extractor) ExtractContent(ctx context.Context, html string, category gleaner.ContentCategory) (string, error) {
	if html == "" {
		return "", gleaner.Errorf(gleaner.EINVALID, "html required")
	}

	result, err := e.client.Models.GenerateContent(ctx, ModelFor(category),
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(html, category)}},
		}},
		BuildConfig(category),
	)
	if err != nil {
		return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "gemini: %v", err)
	}
	if result == nil {
		return "", gleaner.Errorf(gleaner.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// ExtractBatch runs the requests concurrently and returns one string per
// request, in request order. Per-item failures come back as "".
func (e *Extractor) ExtractBatch(ctx context.Context, reqs []gleaner.FallbackRequest) []string {
	out := make([]string, len(reqs))
	var g errgroup.Group
	g.SetLimit(batchConcurrency)
	for i, req := range reqs {
		g.Go(func() error {
			text, err := e.ExtractContent(ctx, req.HTML, req.Category)
			if err != nil {
				return nil
			}
			out[i] = text
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// ModelFor returns the model used for a content category. Article bodies
// go to the larger model; single-field extractions use the fast one.
func ModelFor(category gleaner.ContentCategory) string {
	if category == gleaner.CategoryContent {
		return proModel
	}
	return flashModel
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
func BuildConfig(category gleaner.ContentCategory) *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: gleaner.FallbackInstruction(category),
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the page HTML.
func BuildUserPrompt(html string, category gleaner.ContentCategory) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	sb.WriteString(html)
	sb.WriteString("\n</page>\n\n")
	fmt.Fprintf(&sb, "Extract the %s of this page.", category)
	return sb.String()
}
