package values

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetUnknownKey(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "", s.Get("COURT.COUNTY"), "unknown keys resolve to empty string")
}

func TestStoreSetLastWriteWins(t *testing.T) {
	s := NewStore()
	s.Set("CLIENT.NAME", "Jane Roe")
	s.Set("CLIENT.NAME", "John Doe")
	assert.Equal(t, "John Doe", s.Get("CLIENT.NAME"))
}

func TestStoreDerivation(t *testing.T) {
	rule := DerivationRule{
		Driver:    "COURT.COUNTY",
		Dependent: "COURT.CIRCUIT",
		Values:    map[string]string{"Duval": "4th", "Orange": "9th"},
	}
	s := NewStore(rule)

	s.Set("COURT.COUNTY", "Duval")
	assert.Equal(t, "4th", s.Get("COURT.CIRCUIT"), "dependent field derived from driver")

	s.Set("COURT.COUNTY", "Orange")
	assert.Equal(t, "9th", s.Get("COURT.CIRCUIT"), "derivation follows driver changes")

	// A driver value outside the table leaves the dependent untouched.
	s.Set("COURT.COUNTY", "Atlantis")
	assert.Equal(t, "9th", s.Get("COURT.CIRCUIT"))

	// Unrelated keys never trigger the rule.
	s.Set("CLIENT.NAME", "Duval")
	assert.Equal(t, "9th", s.Get("COURT.CIRCUIT"))
}

func TestStoreExportImportRoundTrip(t *testing.T) {
	s := NewStore()
	s.Set("CLIENT.NAME", "Jane Roe")
	s.Set("COURT.COUNTY", "Duval")
	s.Set("CASE.NOTE", `special "chars" \ here`)

	exported, err := s.Export()
	require.NoError(t, err)

	restored := NewStore()
	require.NoError(t, restored.Import(exported))
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
}

func TestStoreImportOverwritesOnlyPresentKeys(t *testing.T) {
	s := NewStore()
	s.Set("CLIENT.NAME", "old")
	s.Set("CLIENT.PHONE", "5551234567")

	require.NoError(t, s.Import(`{"CLIENT.NAME": "new"}`))
	assert.Equal(t, "new", s.Get("CLIENT.NAME"))
	assert.Equal(t, "5551234567", s.Get("CLIENT.PHONE"), "keys absent from the document are untouched")
}

func TestStoreImportMalformed(t *testing.T) {
	s := NewStore()
	s.Set("CLIENT.NAME", "kept")

	err := s.Import(`{not json`)
	require.Error(t, err)
	assert.Equal(t, "kept", s.Get("CLIENT.NAME"), "failed import must not modify the store")
	assert.Equal(t, 1, s.Len())
}

func TestStoreImportDoesNotDerive(t *testing.T) {
	// The exported document carries the dependent values as the user last
	// saw them, so import takes every pair verbatim instead of re-running
	// derivations against the driver keys.
	rule := DerivationRule{
		Driver:    "COURT.COUNTY",
		Dependent: "COURT.CIRCUIT",
		Values:    map[string]string{"Duval": "4th"},
	}
	s := NewStore(rule)

	require.NoError(t, s.Import(`{"COURT.COUNTY": "Duval"}`))
	assert.Equal(t, "", s.Get("COURT.CIRCUIT"), "import never fires derivation rules")
}

func TestStoreImportKeepsOverriddenDependent(t *testing.T) {
	rule := DerivationRule{
		Driver:    "COURT.COUNTY",
		Dependent: "COURT.CIRCUIT",
		Values:    map[string]string{"Duval": "4th"},
	}

	source := NewStore(rule)
	source.Set("COURT.COUNTY", "Duval")
	// Manual override of the derived value, entered after the derivation.
	source.Set("COURT.CIRCUIT", "4TH JUDICIAL")

	exported, err := source.Export()
	require.NoError(t, err)

	// Map iteration order varies, so a single pass can miss an
	// order-dependent overwrite; repeat to make the check meaningful.
	for i := 0; i < 100; i++ {
		restored := NewStore(rule)
		require.NoError(t, restored.Import(exported))
		require.Equal(t, "4TH JUDICIAL", restored.Get("COURT.CIRCUIT"),
			"import %d overwrote the exported dependent value", i)
		require.Equal(t, source.Snapshot(), restored.Snapshot())
	}
}

func TestStoreCompletedCount(t *testing.T) {
	s := NewStore()
	s.Set("A.B", "value")
	s.Set("C.D", "   ")
	s.Set("E.F", "")
	assert.Equal(t, 1, s.CompletedCount())
}

func TestStoreClear(t *testing.T) {
	rule := DerivationRule{
		Driver:    "COURT.COUNTY",
		Dependent: "COURT.CIRCUIT",
		Values:    map[string]string{"Duval": "4th"},
	}
	s := NewStore(rule)
	s.Set("A.B", "x")
	s.Clear()

	assert.Equal(t, 0, s.Len())

	// Rules survive a clear.
	s.Set("COURT.COUNTY", "Duval")
	assert.Equal(t, "4th", s.Get("COURT.CIRCUIT"))
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `derivations:
  - driver: COURT.COUNTY
    dependent: COURT.CIRCUIT
    values:
      Duval: 4th
      Orange: 9th
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "COURT.COUNTY", rules[0].Driver)
	assert.Equal(t, "COURT.CIRCUIT", rules[0].Dependent)
	assert.Equal(t, "4th", rules[0].Values["Duval"])
}

func TestLoadRulesEmptyPath(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Nil(t, rules)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRulesIncompleteRule(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `derivations:
  - driver: COURT.COUNTY
    values:
      Duval: 4th
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadRules(path)
	assert.Error(t, err, "a rule without a dependent key is rejected")
}
