package field

import "testing"

type mapGetter map[string]string

func (m mapGetter) Get(key string) string { return m[key] }

func mustParse(t *testing.T, token string) Descriptor {
	t.Helper()
	d, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse(%q): %v", token, err)
	}
	return d
}

func TestRegistryFirstWins(t *testing.T) {
	r := NewRegistry()
	r.Register(mustParse(t, "{{A.B|TEXT}}"))
	r.Register(mustParse(t, "{{A.B|DATE}}"))

	d, ok := r.Get("A.B")
	if !ok {
		t.Fatal("A.B not registered")
	}
	if d.Kind != KindText {
		t.Errorf("redefinition replaced canonical kind: got %q, want TEXT", d.Kind)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryCategorizeOrdering(t *testing.T) {
	r := NewRegistry()
	r.Register(
		mustParse(t, "{{COURT.COUNTY|TEXT}}"),
		mustParse(t, "{{CLIENT.ZIP|TEXT}}"),
		mustParse(t, "{{COURT.CASE_NO|TEXT}}"),
		mustParse(t, "{{CLIENT.ADDRESS|TEXT}}"),
	)

	categories := r.Categorize()
	if len(categories) != 2 {
		t.Fatalf("Categorize returned %d categories, want 2", len(categories))
	}
	if categories[0].Name != "CLIENT" || categories[1].Name != "COURT" {
		t.Errorf("category order = [%s, %s], want [CLIENT, COURT]", categories[0].Name, categories[1].Name)
	}
	if categories[0].Fields[0].Name != "ADDRESS" || categories[0].Fields[1].Name != "ZIP" {
		t.Errorf("CLIENT fields not sorted by name: %v", categories[0].Fields)
	}
	if categories[1].Fields[0].Name != "CASE_NO" || categories[1].Fields[1].Name != "COUNTY" {
		t.Errorf("COURT fields not sorted by name: %v", categories[1].Fields)
	}

	// Idempotent over unchanged registry contents.
	again := r.Categorize()
	for i := range categories {
		if categories[i].Name != again[i].Name || len(categories[i].Fields) != len(again[i].Fields) {
			t.Fatal("repeated Categorize calls disagree")
		}
	}
}

func TestRegistryCategoryIcons(t *testing.T) {
	r := NewRegistry()
	r.Register(
		mustParse(t, "{{COURT.COUNTY|TEXT}}"),
		mustParse(t, "{{MISC.NOTE|TEXT}}"),
	)

	for _, cat := range r.Categorize() {
		switch cat.Name {
		case "COURT":
			if cat.Icon != "fas fa-landmark" {
				t.Errorf("COURT icon = %q, want fas fa-landmark", cat.Icon)
			}
		case "MISC":
			if cat.Icon != "fas fa-folder" {
				t.Errorf("unknown category icon = %q, want fallback fas fa-folder", cat.Icon)
			}
		}
	}
}

func TestRegistryMissing(t *testing.T) {
	r := NewRegistry()
	r.Register(
		mustParse(t, "{{CLIENT.NAME|TEXT}}"),
		mustParse(t, "{{COURT.CIRCUIT|CALCULATED}}"),
		mustParse(t, "{{CLIENT.PHONE|PHONE}}"),
	)

	missing := r.Missing(mapGetter{
		"CLIENT.PHONE": "5551234567",
		// CLIENT.NAME unset, COURT.CIRCUIT unset but calculated.
	})

	if len(missing) != 1 {
		t.Fatalf("Missing returned %d fields, want 1 (calculated fields are exempt)", len(missing))
	}
	if missing[0].Key != "CLIENT.NAME" {
		t.Errorf("missing field = %q, want CLIENT.NAME", missing[0].Key)
	}
}

func TestRegistryMissingWhitespaceValue(t *testing.T) {
	r := NewRegistry()
	r.Register(mustParse(t, "{{CLIENT.NAME|TEXT}}"))

	missing := r.Missing(mapGetter{"CLIENT.NAME": "   "})
	if len(missing) != 1 {
		t.Errorf("all-whitespace value should count as missing, got %d missing", len(missing))
	}
}

func TestRegistryClear(t *testing.T) {
	r := NewRegistry()
	r.Register(mustParse(t, "{{A.B|TEXT}}"))
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", r.Len())
	}
	if len(r.Categorize()) != 0 {
		t.Error("Categorize after Clear should be empty")
	}
}
