package query

import (
	"fmt"
	"strings"
)

type cardinalityClass int

const (
	CARD_UNKNOWN cardinalityClass = iota
	CARD_HIGH
	CARD_MEDIUM
	CARD_LOW
	CARD_VERY_LOW
)

func (c cardinalityClass) String() string {
	switch c {
	case CARD_HIGH:
		return "high"
	case CARD_MEDIUM:
		return "medium"
	case CARD_LOW:
		return "low"
	case CARD_VERY_LOW:
		return "very low"
	default:
		return "unknown"
	}
}

func (c cardinalityClass) key() string {
	switch c {
	case CARD_HIGH:
		return "high"
	case CARD_MEDIUM:
		return "medium"
	case CARD_LOW:
		return "low"
	case CARD_VERY_LOW:
		return "very_low"
	default:
		return "unknown"
	}
}

// fallbacks for profiles with missing table entries
const neutralBase = 0.5
const neutralModifier = 0.3

// Scorer assigns heuristic selectivity scores to conditions.
// Lower score = more selective = should be applied earlier.
// Scoring is total: unrecognized operators, columns, and values fall back
// to neutral defaults instead of failing.
type Scorer struct {
	profile Profile
	columns map[string]cardinalityClass
	common  map[string]bool
}

type ScoreBreakdown struct {
	Base        float64
	Cardinality float64
	ValueAdjust float64
	Total       float64
	Reasoning   string
}

func NewScorer(p Profile) Scorer {
	s := Scorer{
		profile: p,
		columns: make(map[string]cardinalityClass),
		common:  make(map[string]bool, len(p.CommonValues)),
	}

	for key, class := range map[string]cardinalityClass{
		"high":     CARD_HIGH,
		"medium":   CARD_MEDIUM,
		"low":      CARD_LOW,
		"very_low": CARD_VERY_LOW,
	} {
		for _, column := range p.Columns[key] {
			s.columns[strings.ToLower(column)] = class
		}
	}

	for _, value := range p.CommonValues {
		s.common[strings.ToLower(value)] = true
	}

	return s
}

func (s Scorer) Score(c Condition) float64 {
	return s.Breakdown(c).Total
}

// Breakdown scores a condition and reports the contribution of the
// operator, the column cardinality class, and the value frequency.
func (s Scorer) Breakdown(c Condition) ScoreBreakdown {
	bd := ScoreBreakdown{}
	reasons := make([]string, 0, 3)

	var opKey string
	switch {
	case c.Operator == OP_EQ:
		opKey = "equality"
		reasons = append(reasons, "equality condition (highly selective)")
	case c.Operator.IsRange():
		opKey = "range"
		reasons = append(reasons, "range condition (moderately selective)")
	case c.Operator == OP_NE:
		opKey = "inequality"
		reasons = append(reasons, "inequality condition (less selective)")
	case c.Operator == OP_LIKE:
		opKey = "pattern"
		reasons = append(reasons, "pattern condition (least selective)")
	default:
		reasons = append(reasons, fmt.Sprintf("operator %s (moderate selectivity)", c.Operator))
	}

	base, ok := s.profile.OperatorBases[opKey]
	if !ok {
		base = neutralBase
	}
	bd.Base = base

	class := s.columns[strings.ToLower(c.Column)]
	modifier, ok := s.profile.CardinalityModifiers[class.key()]
	if !ok {
		modifier = neutralModifier
	}
	bd.Cardinality = modifier
	if class == CARD_UNKNOWN {
		reasons = append(reasons, fmt.Sprintf("column '%s' has unknown cardinality (assumed medium)", c.Column))
	} else {
		reasons = append(reasons, fmt.Sprintf("column '%s' has %s cardinality", c.Column, class))
	}

	// value frequency only matters for equality
	if c.Operator == OP_EQ && c.Value != nil {
		literal := c.Value.Literal()
		if s.common[strings.ToLower(literal)] {
			bd.ValueAdjust = s.profile.CommonValueAdjust
			reasons = append(reasons, fmt.Sprintf("value '%s' is common (less selective)", literal))
		} else {
			bd.ValueAdjust = s.profile.RareValueAdjust
			reasons = append(reasons, fmt.Sprintf("value '%s' is uncommon (more selective)", literal))
		}
	}

	bd.Total = min(max(bd.Base+bd.Cardinality+bd.ValueAdjust, 0), 1)
	bd.Reasoning = strings.Join(reasons, "; ")

	return bd
}

var defaultScorer = NewScorer(DefaultProfile())

// Score a condition with the default profile
func Score(c Condition) float64 {
	return defaultScorer.Score(c)
}
