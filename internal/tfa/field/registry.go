package field

import (
	"sort"
	"strings"
)

// Registry deduplicates field descriptors across templates by key.
//
// Insertion is first-wins: once a key is registered, later definitions under
// the same key are ignored, even when another template declares the field
// with a different kind or options. The first template to mention a field
// owns its canonical definition.
type Registry struct {
	fields map[string]Descriptor
	order  []string
}

// NewRegistry creates an empty field registry.
func NewRegistry() *Registry {
	return &Registry{fields: make(map[string]Descriptor)}
}

// Register inserts descriptors into the registry, skipping keys already
// present.
func (r *Registry) Register(descriptors ...Descriptor) {
	for _, d := range descriptors {
		if _, ok := r.fields[d.Key]; ok {
			continue
		}
		r.fields[d.Key] = d
		r.order = append(r.order, d.Key)
	}
}

// Get returns the canonical descriptor for a key.
func (r *Registry) Get(key string) (Descriptor, bool) {
	d, ok := r.fields[key]
	return d, ok
}

// Len returns the number of unique registered fields.
func (r *Registry) Len() int {
	return len(r.fields)
}

// All returns every registered descriptor in registration order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.fields[key])
	}
	return out
}

// Clear removes all registered fields.
func (r *Registry) Clear() {
	r.fields = make(map[string]Descriptor)
	r.order = nil
}

// Categorize groups the registered fields by category for form rendering.
// Fields within a category are sorted by name and categories by category
// name, so repeated calls over the same registry produce identical output.
func (r *Registry) Categorize() []Category {
	groups := make(map[string][]Descriptor)
	for _, d := range r.fields {
		groups[d.Category] = append(groups[d.Category], d)
	}

	categories := make([]Category, 0, len(groups))
	for name, fields := range groups {
		sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
		categories = append(categories, Category{
			Name:   name,
			Icon:   IconFor(name),
			Fields: fields,
		})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories
}

// ValueGetter resolves the current value for a field key. An unknown key
// resolves to the empty string.
type ValueGetter interface {
	Get(key string) string
}

// Missing returns every registered non-calculated field whose value is empty
// or all-whitespace. Calculated fields are filled by derivation rules, not by
// the user, so an empty one never blocks generation.
func (r *Registry) Missing(values ValueGetter) []Descriptor {
	var missing []Descriptor
	for _, d := range r.All() {
		if d.IsCalculated() {
			continue
		}
		if strings.TrimSpace(values.Get(d.Key)) == "" {
			missing = append(missing, d)
		}
	}
	return missing
}
