package values

import (
	"fmt"

	"github.com/spf13/viper"
)

// DerivationRule computes a dependent field's value from a driver field's
// value through a lookup table. Rules are configuration, not code: the
// shipped example maps Florida counties to their judicial circuit, but any
// driver/dependent pair can be wired in from a rules file.
type DerivationRule struct {
	Driver    string            `mapstructure:"driver"`
	Dependent string            `mapstructure:"dependent"`
	Values    map[string]string `mapstructure:"values"`
}

// LoadRules reads derivation rules from a YAML or JSON rules file. The file
// holds a top-level "derivations" list. An empty path yields no rules.
func LoadRules(path string) ([]DerivationRule, error) {
	if path == "" {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var rules []DerivationRule
	if err := v.UnmarshalKey("derivations", &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	for i, rule := range rules {
		if rule.Driver == "" || rule.Dependent == "" {
			return nil, fmt.Errorf("rules file %s: derivation %d is missing driver or dependent key", path, i)
		}
	}

	return rules, nil
}
