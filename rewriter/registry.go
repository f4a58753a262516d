package rewriter

import (
	"sort"

	"github.com/darianmavgo/ora2pg/config"
	"go.uber.org/zap"
)

// Registry holds the enabled rules in priority order.
type Registry struct {
	rules  []Rule
	logger *zap.Logger
}

// RuleInfo contains metadata about a rule.
type RuleInfo struct {
	Name        string
	Description string
	Priority    int
	OptIn       bool
	Enabled     bool
}

// NewRegistry creates a registry with every default rule that cfg enables.
// A nil cfg enables all rules that are not opt-in.
func NewRegistry(cfg *config.Config, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := &Registry{logger: logger}
	registry.registerDefaultRules(cfg)
	return registry
}

// DefaultRules returns every built-in rule, enabled or not, in priority order.
func DefaultRules(cfg *config.Config) []Rule {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	rules := []Rule{&DropRule{}}
	rules = append(rules, createRules()...)
	rules = append(rules, NewSchemaQualifierRule(cfg.Schemas))
	rules = append(rules, dataTypeRules()...)
	rules = append(rules, functionRules()...)
	rules = append(rules, reviewRules()...)
	rules = append(rules, NewSystemViewRule(cfg.SystemViews), dualRule())
	sortRules(rules)
	return rules
}

// DescribeRules lists every built-in rule with its enabled state under cfg.
func DescribeRules(cfg *config.Config) []RuleInfo {
	rules := DefaultRules(cfg)
	infos := make([]RuleInfo, len(rules))
	for i, rule := range rules {
		optIn := IsOptIn(rule)
		infos[i] = RuleInfo{
			Name:        rule.Name(),
			Description: rule.Description(),
			Priority:    rule.Priority(),
			OptIn:       optIn,
			Enabled:     cfg.IsRuleEnabled(rule.Name(), optIn),
		}
	}
	return infos
}

// Register adds a rule, keeping priority order. Rules with equal priority
// keep registration order.
func (r *Registry) Register(rule Rule) {
	r.logger.Debug("registering rule", zap.String("name", rule.Name()), zap.Int("priority", rule.Priority()))
	r.rules = append(r.rules, rule)
	sortRules(r.rules)
}

// GetRules returns the registered rules in priority order.
func (r *Registry) GetRules() []Rule {
	result := make([]Rule, len(r.rules))
	copy(result, r.rules)
	return result
}

// GetRuleByName returns a rule by its name, or nil.
func (r *Registry) GetRuleByName(name string) Rule {
	for _, rule := range r.rules {
		if rule.Name() == name {
			return rule
		}
	}
	return nil
}

// ListRules returns information about the registered rules.
func (r *Registry) ListRules() []RuleInfo {
	result := make([]RuleInfo, len(r.rules))
	for i, rule := range r.rules {
		result[i] = RuleInfo{
			Name:        rule.Name(),
			Description: rule.Description(),
			Priority:    rule.Priority(),
			OptIn:       IsOptIn(rule),
			Enabled:     true,
		}
	}
	return result
}

func (r *Registry) registerDefaultRules(cfg *config.Config) {
	defaults := DefaultRules(cfg)

	known := make(map[string]bool, len(defaults))
	for _, rule := range defaults {
		known[rule.Name()] = true
	}
	if cfg != nil {
		for _, name := range append(append([]string{}, cfg.EnabledRules...), cfg.DisabledRules...) {
			if !known[name] {
				r.logger.Warn("unknown rule name in config", zap.String("name", name))
			}
		}
	}

	for _, rule := range defaults {
		if !cfg.IsRuleEnabled(rule.Name(), IsOptIn(rule)) {
			r.logger.Info("skipping disabled rule", zap.String("name", rule.Name()))
			continue
		}
		r.Register(rule)
	}
}

func sortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority() < rules[j].Priority()
	})
}
