package mock

import "github.com/fwojciec/gleaner"

var _ gleaner.ContentValidator = (*ContentValidator)(nil)

// ContentValidator is a mock implementation of gleaner.ContentValidator.
type ContentValidator struct {
	ValidateFn func(text string, category gleaner.ContentCategory) gleaner.ValidationResult
}

func (v *ContentValidator) Validate(text string, category gleaner.ContentCategory) gleaner.ValidationResult {
	return v.ValidateFn(text, category)
}
