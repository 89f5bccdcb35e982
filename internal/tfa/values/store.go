// Package values holds user-entered field values keyed by "CATEGORY.NAME"
// and applies derivation rules that compute dependent fields from a driver
// field's value.
package values

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Store is a key->value map of raw user input. Last write wins; there is no
// history. Reads of unknown keys return the empty string, never an error.
type Store struct {
	values map[string]string
	rules  []DerivationRule
}

// NewStore creates an empty value store with the given derivation rules.
func NewStore(rules ...DerivationRule) *Store {
	return &Store{
		values: make(map[string]string),
		rules:  rules,
	}
}

// Set records a value and applies any derivation rule driven by the key.
// When the driver's value has no entry in a rule's lookup table the dependent
// field is left unchanged.
func (s *Store) Set(key, value string) {
	s.values[key] = value
	for _, rule := range s.rules {
		if rule.Driver != key {
			continue
		}
		if derived, ok := rule.Values[value]; ok {
			s.values[rule.Dependent] = derived
		}
	}
}

// Get returns the stored value for a key, or the empty string.
func (s *Store) Get(key string) string {
	return s.values[key]
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return len(s.values)
}

// CompletedCount returns how many stored values are non-blank.
func (s *Store) CompletedCount() int {
	n := 0
	for _, v := range s.values {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the current key->value map.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Clear removes every stored value. Derivation rules are retained.
func (s *Store) Clear() {
	s.values = make(map[string]string)
}

// Export serializes the store as a pretty-printed flat JSON object, the
// interchange format for saving and restoring a client's field data.
func (s *Store) Export() (string, error) {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to export field values: %w", err)
	}
	return string(data), nil
}

// Import merges values from an exported JSON object. Keys present in the
// document overwrite existing entries verbatim; unrelated keys are untouched.
// Derivation rules do not fire on import: the exported document already holds
// the dependent values as the user last saw them, including manual overrides,
// and must round-trip unchanged. Malformed JSON leaves the store unmodified.
func (s *Store) Import(jsonText string) error {
	var incoming map[string]string
	if err := json.Unmarshal([]byte(jsonText), &incoming); err != nil {
		return fmt.Errorf("invalid field values document: %w", err)
	}
	for key, value := range incoming {
		s.values[key] = value
	}
	return nil
}
