package rewriter

import "regexp"

// SubstitutionRule replaces every match of a pattern on the line.
type SubstitutionRule struct {
	name        string
	description string
	priority    int
	pattern     *regexp.Regexp
	replacement string
	// notFollowedBy, when set, must be anchored with ^. A match whose
	// trailing text matches it is left as is.
	notFollowedBy *regexp.Regexp
}

// NewSubstitution builds a rule replacing pattern with replacement, using
// regexp.Expand syntax for the replacement.
func NewSubstitution(name, description string, priority int, pattern, replacement string) *SubstitutionRule {
	return &SubstitutionRule{
		name:        name,
		description: description,
		priority:    priority,
		pattern:     regexp.MustCompile(pattern),
		replacement: replacement,
	}
}

// NotFollowedBy skips matches whose following text matches follow.
// RE2 has no lookahead, so the check runs on the text after each match.
func (r *SubstitutionRule) NotFollowedBy(follow string) *SubstitutionRule {
	r.notFollowedBy = regexp.MustCompile("^(?:" + follow + ")")
	return r
}

func (r *SubstitutionRule) Name() string        { return r.name }
func (r *SubstitutionRule) Description() string { return r.description }
func (r *SubstitutionRule) Priority() int       { return r.priority }

func (r *SubstitutionRule) ShouldApply(line string) bool {
	return r.pattern.MatchString(line)
}

func (r *SubstitutionRule) Apply(line string) Change {
	if r.notFollowedBy == nil {
		return Change{Line: r.pattern.ReplaceAllString(line, r.replacement)}
	}
	return Change{Line: r.replaceUnlessFollowed(line)}
}

func (r *SubstitutionRule) replaceUnlessFollowed(line string) string {
	matches := r.pattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return line
	}
	out := make([]byte, 0, len(line))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		out = append(out, line[last:start]...)
		if r.notFollowedBy.MatchString(line[end:]) {
			out = append(out, line[start:end]...)
		} else {
			out = r.pattern.ExpandString(out, r.replacement, line, m)
		}
		last = end
	}
	out = append(out, line[last:]...)
	return string(out)
}

// countRule emits an event when every keyword appears on the line and
// strips the given modifiers from it.
type countRule struct {
	name        string
	description string
	priority    int
	keywords    []*regexp.Regexp
	strip       []*regexp.Regexp
	event       Kind
}

func newCountRule(name, description string, priority int, event Kind, keywords []string, strip ...string) *countRule {
	r := &countRule{
		name:        name,
		description: description,
		priority:    priority,
		event:       event,
	}
	for _, k := range keywords {
		r.keywords = append(r.keywords, regexp.MustCompile(k))
	}
	for _, s := range strip {
		r.strip = append(r.strip, regexp.MustCompile(s))
	}
	return r
}

func (r *countRule) Name() string        { return r.name }
func (r *countRule) Description() string { return r.description }
func (r *countRule) Priority() int       { return r.priority }

func (r *countRule) ShouldApply(line string) bool {
	for _, k := range r.keywords {
		if !k.MatchString(line) {
			return false
		}
	}
	return true
}

func (r *countRule) Apply(line string) Change {
	for _, s := range r.strip {
		line = s.ReplaceAllString(line, "")
	}
	return Change{Line: line, Events: []Kind{r.event}}
}

// reviewRule leaves the line alone and records a finding when the pattern
// is still present.
type reviewRule struct {
	name     string
	note     string
	priority int
	pattern  *regexp.Regexp
}

func newReviewRule(name, note string, priority int, pattern string) *reviewRule {
	return &reviewRule{
		name:     name,
		note:     note,
		priority: priority,
		pattern:  regexp.MustCompile(pattern),
	}
}

func (r *reviewRule) Name() string        { return r.name }
func (r *reviewRule) Description() string { return "Flag for review: " + r.note }
func (r *reviewRule) Priority() int       { return r.priority }

func (r *reviewRule) ShouldApply(line string) bool {
	return r.pattern.MatchString(line)
}

func (r *reviewRule) Apply(line string) Change {
	return Change{
		Line:     line,
		Findings: []Finding{{Rule: r.name, Note: r.note}},
	}
}
