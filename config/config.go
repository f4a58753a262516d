package config

import (
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/pingcap/errors"
	"github.com/zclconf/go-cty/cty"
)

const (
	// DefaultSchema is the source schema whose qualifier is stripped when no
	// schemas are configured.
	DefaultSchema = "ARGUS_APP"

	// DefaultProgressInterval is the number of input lines between progress lines.
	DefaultProgressInterval = 10000

	// DefaultInputEncoding is the label of the expected input encoding.
	DefaultInputEncoding = "utf-8"
)

// Config represents the converter configuration.
type Config struct {
	// Schemas lists the schema names whose qualifiers are removed from every line.
	Schemas []string `hcl:"schemas,optional"`
	// SystemViews lists Oracle catalog views that cause a line to be commented out.
	SystemViews []string `hcl:"system_views,optional"`
	// EnabledRules turns on opt-in rules by name.
	EnabledRules []string `hcl:"enabled_rules,optional"`
	// DisabledRules turns off rules by name. It wins over EnabledRules.
	DisabledRules    []string `hcl:"disabled_rules,optional"`
	ProgressInterval int      `hcl:"progress_interval,optional"`
	InputEncoding    string   `hcl:"input_encoding,optional"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Schemas:          []string{DefaultSchema},
		SystemViews:      []string{"V$PARAMETER"},
		EnabledRules:     []string{},
		DisabledRules:    []string{},
		ProgressInterval: DefaultProgressInterval,
		InputEncoding:    DefaultInputEncoding,
	}
}

// IsRuleEnabled reports whether the named rule should run. Opt-in rules run
// only when listed in EnabledRules; any rule listed in DisabledRules is off.
func (c *Config) IsRuleEnabled(name string, optIn bool) bool {
	if c == nil {
		return !optIn
	}
	if contains(c.DisabledRules, name) {
		return false
	}
	if optIn {
		return contains(c.EnabledRules, name)
	}
	return true
}

// Load reads the configuration from the given HCL file.
// Attributes missing from the file keep their default values.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to read config file %s", path)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("failed to parse config file: %s", diags.Error())
	}

	cfg := DefaultConfig()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("failed to decode config: %s", diags.Error())
	}

	if cfg.ProgressInterval <= 0 {
		return nil, errors.Errorf("progress_interval must be positive, got %d", cfg.ProgressInterval)
	}
	return cfg, nil
}

// Export writes the configuration to the specified file in HCL format.
func Export(path string, cfg *Config) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("schemas", stringList(cfg.Schemas))
	root.SetAttributeValue("system_views", stringList(cfg.SystemViews))
	root.SetAttributeValue("enabled_rules", stringList(cfg.EnabledRules))
	root.SetAttributeValue("disabled_rules", stringList(cfg.DisabledRules))
	root.SetAttributeValue("progress_interval", cty.NumberIntVal(int64(cfg.ProgressInterval)))
	root.SetAttributeValue("input_encoding", cty.StringVal(cfg.InputEncoding))

	file, err := os.Create(path)
	if err != nil {
		return errors.Annotatef(err, "failed to create config file %s", path)
	}
	defer file.Close()

	if _, err = file.Write(f.Bytes()); err != nil {
		return errors.Annotate(err, "failed to write config to file")
	}

	return nil
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
