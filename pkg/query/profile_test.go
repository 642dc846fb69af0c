package query_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jpappel/squint/pkg/query"
)

func TestLoadProfile(t *testing.T) {
	contents := `
operator_bases:
  pattern: 0.9
common_values:
  - germany
  - de
common_value_adjust: 0.2
`
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := query.LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got := p.OperatorBases["pattern"]; got != 0.9 {
		t.Errorf("Got pattern base %v want 0.9", got)
	}
	if got := p.OperatorBases["equality"]; got != 0.1 {
		t.Errorf("Override clobbered equality base: got %v want 0.1", got)
	}
	if got := p.CommonValueAdjust; got != 0.2 {
		t.Errorf("Got common value adjust %v want 0.2", got)
	}
	if got := p.RareValueAdjust; got != -0.05 {
		t.Errorf("Override clobbered rare value adjust: got %v want -0.05", got)
	}

	scorer := query.NewScorer(p)
	rare := scorer.Score(query.Condition{Column: "country", Operator: OP_EQ, Value: str("Liechtenstein")})
	common := scorer.Score(query.Condition{Column: "country", Operator: OP_EQ, Value: str("Germany")})
	if rare >= common {
		t.Errorf("Expected overridden common value to score above uncommon: %v vs %v", common, rare)
	}
}

func TestLoadProfile_PartialOverride(t *testing.T) {
	contents := `
operator_bases:
  pattern: 0.9
cardinality_modifiers:
  unknown: 0.25
columns:
  low: [grade]
`
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := query.LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}

	defaults := query.DefaultProfile()
	for _, key := range []string{"equality", "range", "inequality"} {
		if got := p.OperatorBases[key]; got != defaults.OperatorBases[key] {
			t.Errorf("Override dropped %s base: got %v want %v",
				key, got, defaults.OperatorBases[key])
		}
	}
	if got := p.OperatorBases["pattern"]; got != 0.9 {
		t.Errorf("Got pattern base %v want 0.9", got)
	}

	for _, key := range []string{"high", "medium", "low", "very_low"} {
		if got := p.CardinalityModifiers[key]; got != defaults.CardinalityModifiers[key] {
			t.Errorf("Override dropped %s modifier: got %v want %v",
				key, got, defaults.CardinalityModifiers[key])
		}
	}
	if got := p.CardinalityModifiers["unknown"]; got != 0.25 {
		t.Errorf("Got unknown modifier %v want 0.25", got)
	}

	// an overridden class replaces its column list, other classes keep theirs
	if got := p.Columns["low"]; len(got) != 1 || got[0] != "grade" {
		t.Errorf("Got low cardinality columns %v want [grade]", got)
	}
	if got := p.Columns["high"]; len(got) != len(defaults.Columns["high"]) {
		t.Errorf("Override dropped high cardinality columns: got %v", got)
	}

	if got := p.CommonValueAdjust; got != defaults.CommonValueAdjust {
		t.Errorf("Override dropped common value adjust: got %v", got)
	}
	if got := len(p.CommonValues); got != len(defaults.CommonValues) {
		t.Errorf("Override dropped common values: got %d entries", got)
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	p, err := query.LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Expected an error for a missing file")
	}

	// defaults are still usable
	if got := p.OperatorBases["equality"]; got != 0.1 {
		t.Errorf("Got equality base %v want 0.1", got)
	}
}

func TestLoadProfile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("operator_bases: ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := query.LoadProfile(path); err == nil {
		t.Error("Expected an error for malformed yaml")
	}
}
