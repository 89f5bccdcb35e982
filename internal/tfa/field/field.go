// Package field implements the TFA placeholder grammar: parsing of
// {{CATEGORY.FIELD_NAME|TYPE|OPTIONS}} tokens embedded in document templates,
// and the registry that deduplicates and categorizes parsed fields across a
// batch of templates.
package field

// Kind identifies the value type of a template field. Unrecognized kinds are
// preserved as-is and treated like KindText by the formatter.
type Kind string

const (
	KindText       Kind = "TEXT"
	KindDate       Kind = "DATE"
	KindPhone      Kind = "PHONE"
	KindSelect     Kind = "SELECT"
	KindCalculated Kind = "CALCULATED"
)

// DefaultCategory is assigned to fields whose first segment carries no
// category prefix.
const DefaultCategory = "GENERAL"

// Descriptor is one parsed placeholder definition.
type Descriptor struct {
	// Category is the uppercase grouping key, e.g. "COURT".
	Category string `json:"category"`
	// Name is the field identifier within the category, case preserved.
	Name string `json:"name"`
	// Key is "CATEGORY.Name", the global identity used for lookup and
	// deduplication across templates.
	Key string `json:"key"`
	// Kind is the declared field type, uppercased.
	Kind Kind `json:"kind"`
	// Options holds the declared choices for SELECT fields, empty otherwise.
	Options []string `json:"options,omitempty"`
	// Hint is the raw third segment for non-SELECT kinds, reserved for
	// extensions such as calculation expressions.
	Hint string `json:"hint,omitempty"`
	// Original is the exact token substring, delimiters included, as it
	// appeared in the template. Substitution matches on this literal.
	Original string `json:"original"`
}

// IsCalculated reports whether the field's value arrives via derivation
// rather than user input. Calculated fields are exempt from required-field
// validation.
func (d Descriptor) IsCalculated() bool {
	return d.Kind == KindCalculated
}

// Category groups descriptors sharing a category key for form rendering.
// Fields are sorted by name, and category lists are sorted by category name,
// so the form layout is stable across runs.
type Category struct {
	Name   string       `json:"name"`
	Icon   string       `json:"icon"`
	Fields []Descriptor `json:"fields"`
}

// categoryIcons maps well-known legal categories to form icons. Unknown
// categories fall back to a generic folder.
var categoryIcons = map[string]string{
	"CLIENT":    "fas fa-user",
	"ATTORNEY":  "fas fa-user-tie",
	"CASE":      "fas fa-gavel",
	"COURT":     "fas fa-landmark",
	"DATE":      "fas fa-calendar",
	"FINANCIAL": "fas fa-dollar-sign",
	"CHILDREN":  "fas fa-child",
	"PROPERTY":  "fas fa-home",
	"MOTION":    "fas fa-file-alt",
	"HEARING":   "fas fa-calendar-check",
	"DOCUMENT":  "fas fa-file-text",
}

// IconFor returns the form icon for a category name.
func IconFor(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "fas fa-folder"
}
