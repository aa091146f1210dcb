package mock

import "github.com/fwojciec/gleaner"

var _ gleaner.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of gleaner.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(html string) (string, error)
}

func (s *Sanitizer) Sanitize(html string) (string, error) {
	return s.SanitizeFn(html)
}

var _ gleaner.Trimmer = (*Trimmer)(nil)

// Trimmer is a mock implementation of gleaner.Trimmer.
type Trimmer struct {
	TrimFn func(html string) (string, error)
}

func (t *Trimmer) Trim(html string) (string, error) {
	return t.TrimFn(html)
}
