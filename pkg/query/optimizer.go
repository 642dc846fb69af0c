package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// A condition paired with its selectivity score. Ephemeral, only lives
// inside an Optimize call.
type ScoredCondition struct {
	Condition Condition
	Score     float64
}

type PlanStep struct {
	Step        int
	Description string
	Condition   Condition
}

// OptimizedQuery is the result of reordering a statement's conditions.
// Optimized is always a permutation of Original, and Plan has one step per
// optimized condition. Never mutated after construction.
type OptimizedQuery struct {
	Table     string
	Statement string
	Original  []Condition
	Optimized []Condition
	Plan      []PlanStep
	Summary   string
	Moved     int
}

type Optimizer struct {
	scorer Scorer
}

func NewOptimizer(scorer Scorer) Optimizer {
	return Optimizer{scorer: scorer}
}

// Optimize reorders a query's conditions so the most selective ones are
// applied first. The sort is stable: conditions with equal scores keep
// their source order, there is no further signal to break the tie with.
func (o Optimizer) Optimize(q Query) OptimizedQuery {
	oq := OptimizedQuery{
		Table:     q.Table,
		Statement: q.Raw,
		Original:  q.Conditions,
	}

	if len(q.Conditions) == 0 {
		oq.Summary = fmt.Sprintf("No WHERE conditions - %s will be fully scanned", q.Table)
		return oq
	}

	scored := make([]ScoredCondition, len(q.Conditions))
	for i, condition := range q.Conditions {
		scored[i] = ScoredCondition{condition, o.scorer.Score(condition)}
	}

	slices.SortStableFunc(scored, func(a, b ScoredCondition) int {
		return cmp.Compare(a.Score, b.Score)
	})

	oq.Optimized = make([]Condition, len(scored))
	oq.Plan = make([]PlanStep, len(scored))
	for i, sc := range scored {
		oq.Optimized[i] = sc.Condition
		oq.Plan[i] = PlanStep{
			Step:        i + 1,
			Description: fmt.Sprintf("Apply filter: %s (selectivity: %.3f)", sc.Condition, sc.Score),
			Condition:   sc.Condition,
		}

		if !ConditionEq(q.Conditions[i], sc.Condition) {
			oq.Moved++
		}
	}

	oq.Summary = summarize(oq.Moved, scored)

	return oq
}

func summarize(moved int, scored []ScoredCondition) string {
	b := strings.Builder{}

	if moved == 0 {
		b.WriteString("Conditions already in optimal order")
	} else {
		fmt.Fprintf(&b, "Reordered %d of %d conditions", moved, len(scored))
	}

	first := scored[0]
	last := scored[len(scored)-1]
	fmt.Fprintf(&b, "; most selective: %s (%.3f)", first.Condition, first.Score)
	fmt.Fprintf(&b, ", least selective: %s (%.3f)", last.Condition, last.Score)

	return b.String()
}

// Explain produces a human readable report of how each condition was
// scored and the recommended execution order.
func (o Optimizer) Explain(q Query) string {
	if len(q.Conditions) == 0 {
		return "No WHERE conditions to optimize. Query will perform a full table scan."
	}

	b := &strings.Builder{}
	fmt.Fprintf(b, "Optimization report for table %s\n\n", q.Table)

	b.WriteString("Condition analysis:\n")
	for i, condition := range q.Conditions {
		bd := o.scorer.Breakdown(condition)
		fmt.Fprintf(b, "  %d. %s\n", i+1, condition)
		fmt.Fprintf(b, "     selectivity: %.3f (base %.2f, cardinality %+.2f, value %+.2f)\n",
			bd.Total, bd.Base, bd.Cardinality, bd.ValueAdjust)
		fmt.Fprintf(b, "     %s\n", bd.Reasoning)
	}

	oq := o.Optimize(q)
	b.WriteString("\nRecommended execution order (most selective first):\n")
	for _, step := range oq.Plan {
		fmt.Fprintf(b, "  %d. %s\n", step.Step, step.Condition)
	}

	b.WriteString("\n")
	b.WriteString(oq.Summary)
	b.WriteString("\n")

	return b.String()
}

// Optimize a query with the default profile
func Optimize(q Query) OptimizedQuery {
	return NewOptimizer(defaultScorer).Optimize(q)
}

// OptimizeStatement parses and optimizes a statement in one step
func OptimizeStatement(sql string, scorer Scorer) (OptimizedQuery, error) {
	q, err := Parse(sql)
	if err != nil {
		return OptimizedQuery{}, err
	}

	return NewOptimizer(scorer).Optimize(q), nil
}
