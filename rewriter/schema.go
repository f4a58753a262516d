package rewriter

import (
	"regexp"
	"strings"
)

// SchemaQualifierRule removes a source schema prefix from dotted
// identifiers anywhere on the line. The quoted form is matched exactly,
// the bare form case-insensitively.
type SchemaQualifierRule struct {
	patterns []*regexp.Regexp
}

// NewSchemaQualifierRule builds the rule for the given schema names.
func NewSchemaQualifierRule(schemas []string) *SchemaQualifierRule {
	r := &SchemaQualifierRule{}
	for _, schema := range schemas {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			continue
		}
		quoted := regexp.QuoteMeta(schema)
		r.patterns = append(r.patterns,
			regexp.MustCompile(`"`+quoted+`"\.`),
			regexp.MustCompile(`(?i)\b`+quoted+`\.`),
		)
	}
	return r
}

func (r *SchemaQualifierRule) Name() string { return "schema_qualifier" }

func (r *SchemaQualifierRule) Description() string {
	return "Remove schema qualifiers from identifiers"
}

func (r *SchemaQualifierRule) Priority() int { return 400 }

func (r *SchemaQualifierRule) ShouldApply(line string) bool {
	for _, p := range r.patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func (r *SchemaQualifierRule) Apply(line string) Change {
	for _, p := range r.patterns {
		line = p.ReplaceAllString(line, "")
	}
	return Change{Line: line}
}
