// Package ollama implements the fallback extractor against a local
// Ollama server, for running extraction without a hosted model API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fwojciec/gleaner"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBaseURL    = "http://localhost:11434"
	defaultLightModel = "llama3.2"
	defaultHeavyModel = "llama3.1:8b"

	// batchConcurrency bounds in-flight requests per ExtractBatch call.
	// Local servers queue rather than scale, so this stays small.
	batchConcurrency = 2
)

// Ensure Extractor implements gleaner.FallbackExtractor at compile time.
var _ gleaner.FallbackExtractor = (*Extractor)(nil)

// Extractor implements gleaner.FallbackExtractor using the Ollama chat
// API.
type Extractor struct {
	baseURL    string
	lightModel string
	heavyModel string
	client     *http.Client
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBaseURL sets the Ollama server address.
func WithBaseURL(baseURL string) Option {
	return func(e *Extractor) {
		e.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithModels sets the models used for extraction. The heavy model
// handles article bodies; the light one handles single fields.
func WithModels(light, heavy string) Option {
	return func(e *Extractor) {
		e.lightModel = light
		e.heavyModel = heavy
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(e *Extractor) {
		e.client = client
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		baseURL:    defaultBaseURL,
		lightModel: defaultLightModel,
		heavyModel: defaultHeavyModel,
		client:     &http.Client{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractContent asks the Ollama server for one content category of the
// page.
func (e *Extractor) ExtractContent(ctx context.Context, html string, category gleaner.ContentCategory) (string, error) {
	if html == "" {
		return "", gleaner.Errorf(gleaner.EINVALID, "html required")
	}

	temp := 0.1
	reqBody := chatRequest{
		Model: e.modelFor(category),
		Messages: []chatMessage{
			{Role: "system", Content: gleaner.FallbackInstruction(category)},
			{Role: "user", Content: buildUserPrompt(html, category)},
		},
		Stream:  false,
		Options: chatOptions{Temperature: &temp},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", gleaner.Errorf(gleaner.EINTERNAL, "marshaling request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", gleaner.Errorf(gleaner.EINTERNAL, "creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "ollama request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "reading ollama response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "ollama error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "ollama error (%d)", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", gleaner.Errorf(gleaner.EUNAVAILABLE, "parsing ollama response: %v", err)
	}

	return strings.TrimSpace(chatResp.Message.Content), nil
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

func (e *Extractor) modelFor(category gleaner.ContentCategory) string {
	if category == gleaner.CategoryContent {
		return e.heavyModel
	}
	return e.lightModel
}

func buildUserPrompt(html string, category gleaner.ContentCategory) string {
	var sb strings.Builder
	sb.WriteString("<page>\n")
	sb.WriteString(html)
	sb.WriteString("\n</page>\n\n")
	fmt.Fprintf(&sb, "Extract the %s of this page.", category)
	return sb.String()
}

// API request/response types

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

type errorResponse struct {
	Error string `json:"error"`
}
