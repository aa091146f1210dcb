package gleaner

import "context"

// TokenCounter counts tokens in text for a specific model. Batch runs use
// it to report how much fallback-model budget a corpus would consume.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
