// Package rewriter translates single lines of an Oracle schema dump into
// PostgreSQL by running an ordered list of textual rewrite rules.
package rewriter

import "strings"

// Rule is a single rewrite step over one physical line.
// Apply is only called when ShouldApply returned true for the same line.
type Rule interface {
	Name() string
	Description() string
	// Priority orders rules; lower values run first.
	Priority() int
	ShouldApply(line string) bool
	Apply(line string) Change
}

// OptInRule is implemented by rules that only run when enabled by name.
type OptInRule interface {
	Rule
	OptIn() bool
}

// Change is what a rule did to a line.
type Change struct {
	Line     string
	Events   []Kind
	Findings []Finding
	// Disabled is set when the rule commented the line out.
	Disabled bool
}

// Finding is a note asking a human to review a line.
type Finding struct {
	Rule string
	Note string
}

// Outcome classifies what happened to a line.
type Outcome int

const (
	// Unchanged means no rule altered the line or asked for review.
	Unchanged Outcome = iota
	// Translated means the text was rewritten.
	Translated
	// Flagged means the line was commented out or needs manual review.
	Flagged
)

// Outcomes lists every outcome in report order.
var Outcomes = []Outcome{Unchanged, Translated, Flagged}

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Translated:
		return "translated"
	case Flagged:
		return "flagged"
	default:
		return "unknown"
	}
}

// Result is the rewritten form of one line plus everything observed on it.
type Result struct {
	Line     string
	Outcome  Outcome
	Events   []Kind
	Findings []Finding
}

// IsOptIn reports whether rule must be enabled explicitly.
func IsOptIn(rule Rule) bool {
	o, ok := rule.(OptInRule)
	return ok && o.OptIn()
}

// splitTerminator separates the line terminator from the line body.
func splitTerminator(line string) (body, term string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}

// disable comments out the line body and appends an inline note.
func disable(line, note string) string {
	body, term := splitTerminator(line)
	if term == "" {
		term = "\n"
	}
	return "-- " + body + " -- " + note + term
}
