// Package validation holds the schema validation result shape returned by
// the Nexbase backend. It is a pure value object: the SDK carries it to the
// application without interpreting it, and it has no lifecycle or locking.
package validation

import "fmt"

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding against a document or query.
type Issue struct {
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// String formats the issue for logs and error messages.
func (i Issue) String() string {
	if i.Path == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Path, i.Message)
}

// Result is the outcome of a schema validation.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// OK returns a passing result.
func OK() Result {
	return Result{Valid: true}
}

// Failed returns a failing result carrying the given issues.
func Failed(issues ...Issue) Result {
	return Result{Valid: false, Issues: issues}
}

// Errors returns the error-severity issues.
func (r Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity issues.
func (r Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r Result) filter(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}
