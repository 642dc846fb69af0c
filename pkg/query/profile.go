package query

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Profile holds the heuristic tables the scorer draws from. Read-only
// after construction.
//
// Columns and CardinalityModifiers share the keys "high", "medium", "low"
// and "very_low"; CardinalityModifiers additionally takes "unknown" for
// columns in no class.
type Profile struct {
	OperatorBases        map[string]float64  `yaml:"operator_bases"`
	Columns              map[string][]string `yaml:"columns"`
	CardinalityModifiers map[string]float64  `yaml:"cardinality_modifiers"`
	CommonValues         []string            `yaml:"common_values"`
	CommonValueAdjust    float64             `yaml:"common_value_adjust"`
	RareValueAdjust      float64             `yaml:"rare_value_adjust"`
}

func DefaultProfile() Profile {
	return Profile{
		OperatorBases: map[string]float64{
			"equality":   0.1,
			"range":      0.3,
			"inequality": 0.5,
			"pattern":    0.7,
		},
		Columns: map[string][]string{
			"high":     {"id", "uuid", "email", "username", "ssn", "phone"},
			"medium":   {"country", "state", "city", "department", "category"},
			"low":      {"gender", "status", "type", "level"},
			"very_low": {"age", "salary", "score", "rating"},
		},
		CardinalityModifiers: map[string]float64{
			"high":     0.1,
			"medium":   0.2,
			"low":      0.4,
			"very_low": 0.6,
			"unknown":  0.3,
		},
		CommonValues: []string{
			"us", "usa", "united states",
			"active", "enabled", "true", "1",
			"18", "21", "25", "30", "35", "40", "50",
		},
		CommonValueAdjust: 0.15,
		RareValueAdjust:   -0.05,
	}
}

// overlay mirrors Profile with absence distinguishable from zero, so a
// partial file never clobbers whole default tables
type profileOverlay struct {
	OperatorBases        map[string]float64  `yaml:"operator_bases"`
	Columns              map[string][]string `yaml:"columns"`
	CardinalityModifiers map[string]float64  `yaml:"cardinality_modifiers"`
	CommonValues         []string            `yaml:"common_values"`
	CommonValueAdjust    *float64            `yaml:"common_value_adjust"`
	RareValueAdjust      *float64            `yaml:"rare_value_adjust"`
}

// LoadProfile reads a YAML overrides file on top of the default profile.
// Maps merge per key, so overriding `operator_bases.pattern` leaves the
// other bases at their defaults. `common_values` replaces the whole list.
// The default profile is returned alongside any error.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()

	buf, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}

	var o profileOverlay
	if err := yaml.Unmarshal(buf, &o); err != nil {
		return DefaultProfile(), fmt.Errorf("Cannot parse profile %s: %w", path, err)
	}

	for key, base := range o.OperatorBases {
		p.OperatorBases[key] = base
	}
	for class, columns := range o.Columns {
		p.Columns[class] = columns
	}
	for class, modifier := range o.CardinalityModifiers {
		p.CardinalityModifiers[class] = modifier
	}
	if o.CommonValues != nil {
		p.CommonValues = o.CommonValues
	}
	if o.CommonValueAdjust != nil {
		p.CommonValueAdjust = *o.CommonValueAdjust
	}
	if o.RareValueAdjust != nil {
		p.RareValueAdjust = *o.RareValueAdjust
	}

	return p, nil
}
