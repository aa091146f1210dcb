package gleaner

// ValidationSeverity grades a validation issue.
type ValidationSeverity string

// Validation severities. Error-severity issues force invalidity;
// warning-severity issues reduce the score and only invalidate when they
// compound it to zero.
const (
	SeverityWarning ValidationSeverity = "warning"
	SeverityError   ValidationSeverity = "error"
)

// ValidationIssue is one triggered quality rule.
type ValidationIssue struct {
	// Kind names the triggered rule, e.g. "empty", "all_uppercase",
	// "embedded_url".
	Kind string `json:"kind"`

	Severity ValidationSeverity `json:"severity"`
	Message  string             `json:"message"`
}

// ValidationResult is the outcome of scoring one extracted string.
// Score is in [0,1]; an invalid result always has score 0.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Score  float64           `json:"score"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// ContentValidator scores a single extracted string against the quality
// rules for its content category. It is a pure function of its inputs:
// no side effects, no retained state, same input always yields the same
// result. It never fails; gating on the result is the caller's decision.
type ContentValidator interface {
	Validate(text string, category ContentCategory) ValidationResult
}
