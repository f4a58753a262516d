package rewriter

import (
	"regexp"
	"strings"
)

func functionRules() []Rule {
	return []Rule{
		NewSubstitution("sysdate", "SYSDATE to CURRENT_TIMESTAMP",
			600, `(?i)\bSYSDATE\b`, "CURRENT_TIMESTAMP"),
		NewSubstitution("nvl", "NVL to COALESCE",
			601, `(?i)\bNVL\s*\(`, "COALESCE("),
		&NVL2CaseRule{},
		// Only single-argument TRUNC is a date truncation; TRUNC(x, fmt) is
		// left for review.
		NewSubstitution("trunc", "TRUNC(x) to DATE_TRUNC('day', x)",
			603, `(?i)\bTRUNC\s*\(\s*([^,)]+)\s*\)`, "DATE_TRUNC('day', ${1})"),
		NewSubstitution("instr", "INSTR(haystack, needle) to POSITION(needle IN haystack)",
			604, `(?i)\bINSTR\s*\(\s*([^,]+)\s*,\s*([^,)]+)\s*\)`, "POSITION(${2} IN ${1})"),
		NewSubstitution("substr", "SUBSTR to SUBSTRING",
			605, `(?i)\bSUBSTR\s*\(`, "SUBSTRING("),
	}
}

func reviewRules() []Rule {
	return []Rule{
		newReviewRule("nvl2_review", "NVL2 needs manual conversion to a CASE expression",
			650, `(?i)\bNVL2\s*\(`),
		newReviewRule("decode_review", "DECODE needs manual conversion to a CASE expression",
			651, `(?i)\bDECODE\s*\(`),
		newReviewRule("trunc_review", "TRUNC with a format argument was not converted",
			652, `(?i)\bTRUNC\s*\(`),
		newReviewRule("instr_review", "INSTR with position arguments was not converted",
			653, `(?i)\bINSTR\s*\(`),
	}
}

var nvl2Call = regexp.MustCompile(`(?i)\bNVL2\s*\(\s*([^,]+)\s*,\s*([^,]+)\s*,\s*([^)]+)\s*\)`)

// NVL2CaseRule rewrites NVL2(a, b, c) with simple arguments into a CASE
// expression. Nested calls or commas inside arguments do not match, so it
// is opt-in.
type NVL2CaseRule struct{}

func (r *NVL2CaseRule) Name() string { return "nvl2_case" }

func (r *NVL2CaseRule) Description() string {
	return "NVL2(a, b, c) to CASE WHEN a IS NOT NULL THEN b ELSE c END (opt-in)"
}

func (r *NVL2CaseRule) Priority() int { return 602 }

func (r *NVL2CaseRule) OptIn() bool { return true }

func (r *NVL2CaseRule) ShouldApply(line string) bool {
	return nvl2Call.MatchString(line)
}

func (r *NVL2CaseRule) Apply(line string) Change {
	out := nvl2Call.ReplaceAllStringFunc(line, func(call string) string {
		m := nvl2Call.FindStringSubmatch(call)
		return "CASE WHEN " + strings.TrimSpace(m[1]) +
			" IS NOT NULL THEN " + strings.TrimSpace(m[2]) +
			" ELSE " + strings.TrimSpace(m[3]) + " END"
	})
	return Change{Line: out}
}
