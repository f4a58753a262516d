package rewriter

import "strings"

const systemViewNote = "Oracle system view, needs manual conversion"

// SystemViewRule comments out lines that read Oracle catalog views.
type SystemViewRule struct {
	views []string
}

// NewSystemViewRule builds the rule for the given view names, matched
// case-insensitively as substrings.
func NewSystemViewRule(views []string) *SystemViewRule {
	r := &SystemViewRule{}
	for _, v := range views {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" {
			r.views = append(r.views, v)
		}
	}
	return r
}

func (r *SystemViewRule) Name() string { return "system_view" }

func (r *SystemViewRule) Description() string {
	return "Comment out lines referencing Oracle system views"
}

func (r *SystemViewRule) Priority() int { return 700 }

func (r *SystemViewRule) ShouldApply(line string) bool {
	upper := strings.ToUpper(line)
	for _, v := range r.views {
		if strings.Contains(upper, v) {
			return true
		}
	}
	return false
}

func (r *SystemViewRule) Apply(line string) Change {
	return Change{
		Line:     disable(line, systemViewNote),
		Disabled: true,
		Findings: []Finding{{Rule: r.Name(), Note: systemViewNote}},
	}
}

func dualRule() Rule {
	return NewSubstitution("dual_table", "FROM DUAL to a one-row derived table",
		800, `(?i)\bFROM\s+DUAL\b`, "FROM (SELECT 1) AS dual")
}
