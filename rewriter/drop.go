package rewriter

import (
	"regexp"
	"strings"
)

const packageNote = "Oracle package, convert to PostgreSQL schema/functions"

var (
	dropPattern = regexp.MustCompile(`(?i)^\s*DROP\s+(VIEW|TABLE|SEQUENCE|TYPE|PACKAGE|FUNCTION|PROCEDURE|TRIGGER|INDEX)\s+`)

	cascadeConstraints = regexp.MustCompile(`(?i)\s+cascade\s+constraints\s*;`)
)

type dropAction int

const (
	dropIfExists dropAction = iota
	dropCascade
	dropCascadeConstraints
	dropTerminate
	dropDisable
)

type dropKind struct {
	event    Kind
	action   dropAction
	ifExists *regexp.Regexp
}

var dropKinds = map[string]dropKind{
	"VIEW":      newDropKind("VIEW", DropViews, dropCascade),
	"TABLE":     newDropKind("TABLE", DropTables, dropCascadeConstraints),
	"SEQUENCE":  newDropKind("SEQUENCE", DropSequences, dropTerminate),
	"TYPE":      newDropKind("TYPE", DropTypes, dropCascade),
	"PACKAGE":   newDropKind("PACKAGE", DropPackages, dropDisable),
	"FUNCTION":  newDropKind("FUNCTION", DropFunctions, dropCascade),
	"PROCEDURE": newDropKind("PROCEDURE", DropProcedures, dropCascade),
	"TRIGGER":   newDropKind("TRIGGER", DropTriggers, dropIfExists),
	"INDEX":     newDropKind("INDEX", DropIndexes, dropIfExists),
}

func newDropKind(keyword string, event Kind, action dropAction) dropKind {
	return dropKind{
		event:    event,
		action:   action,
		ifExists: regexp.MustCompile(`(?i)(DROP\s+` + keyword + `\s+)`),
	}
}

// DropRule adds IF EXISTS to DROP statements and maps Oracle's cascade
// spellings. DROP PACKAGE has no PostgreSQL equivalent and is commented out.
type DropRule struct{}

func (r *DropRule) Name() string { return "drop_statement" }

func (r *DropRule) Description() string {
	return "Add IF EXISTS and CASCADE to DROP statements; comment out DROP PACKAGE"
}

func (r *DropRule) Priority() int { return 100 }

func (r *DropRule) ShouldApply(line string) bool {
	return dropPattern.MatchString(line)
}

func (r *DropRule) Apply(line string) Change {
	m := dropPattern.FindStringSubmatch(line)
	if m == nil {
		return Change{Line: line}
	}
	kind := dropKinds[strings.ToUpper(m[1])]
	change := Change{Events: []Kind{kind.event}}

	if kind.action == dropDisable {
		change.Line = disable(line, packageNote)
		change.Disabled = true
		change.Findings = []Finding{{Rule: r.Name(), Note: packageNote}}
		return change
	}

	body, term := splitTerminator(line)
	body = kind.ifExists.ReplaceAllString(body, "${1}IF EXISTS ")

	switch kind.action {
	case dropCascade:
		body = strings.TrimRight(body, " \t\r\n")
		if strings.HasSuffix(body, ";") {
			body = body[:len(body)-1] + " CASCADE;"
		}
	case dropCascadeConstraints:
		body = cascadeConstraints.ReplaceAllString(body, " CASCADE;")
	case dropTerminate:
		trimmed := strings.TrimRight(body, " \t\r\n")
		if !strings.HasSuffix(trimmed, ";") {
			body = trimmed + ";"
			term = "\n"
		}
	}

	change.Line = body + term
	return change
}
