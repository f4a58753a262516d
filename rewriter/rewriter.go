package rewriter

import (
	"strings"

	"github.com/darianmavgo/ora2pg/config"
	"go.uber.org/zap"
)

// Rewriter applies the enabled rules to one line at a time.
// It keeps no state between lines and is safe for concurrent use.
type Rewriter struct {
	rules  []Rule
	logger *zap.Logger
}

// New creates a Rewriter from cfg. A nil cfg uses config.DefaultConfig.
func New(cfg *config.Config, logger *zap.Logger) *Rewriter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewWithRegistry(NewRegistry(cfg, logger), logger)
}

// NewWithRegistry creates a Rewriter running the rules held by registry.
func NewWithRegistry(registry *Registry, logger *zap.Logger) *Rewriter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rewriter{
		rules:  registry.GetRules(),
		logger: logger,
	}
}

// Rules returns the rules in the order they run.
func (r *Rewriter) Rules() []Rule {
	result := make([]Rule, len(r.rules))
	copy(result, r.rules)
	return result
}

// Transform rewrites one line, terminator included. It never fails: lines
// it cannot translate are returned as is or commented out, and the Result
// says which.
func (r *Rewriter) Transform(line string) Result {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "--") {
		return Result{Line: line, Outcome: Unchanged}
	}

	res := Result{Line: line}
	disabled := false
	for _, rule := range r.rules {
		if !rule.ShouldApply(res.Line) {
			continue
		}
		change := rule.Apply(res.Line)
		if ce := r.logger.Check(zap.DebugLevel, "rule applied"); ce != nil {
			ce.Write(
				zap.String("rule", rule.Name()),
				zap.String("before", res.Line),
				zap.String("after", change.Line),
			)
		}
		res.Line = change.Line
		res.Events = append(res.Events, change.Events...)
		res.Findings = append(res.Findings, change.Findings...)
		disabled = disabled || change.Disabled
	}

	switch {
	case disabled || len(res.Findings) > 0:
		res.Outcome = Flagged
	case res.Line != line:
		res.Outcome = Translated
	default:
		res.Outcome = Unchanged
	}
	return res
}
