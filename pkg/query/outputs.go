package query

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

type Outputer interface {
	Output(oq *OptimizedQuery) (string, error)
	OutputTo(w io.Writer, oq *OptimizedQuery) (int, error)
}

type DefaultOutput struct{}
type JsonOutput struct{}
type YamlOutput struct{}

// compile time interface check
var _ Outputer = DefaultOutput{}
var _ Outputer = JsonOutput{}
var _ Outputer = YamlOutput{}

type planStepDoc struct {
	Step        int    `json:"step" yaml:"step"`
	Description string `json:"description" yaml:"description"`
}

type planDoc struct {
	Table               string        `json:"table" yaml:"table"`
	OriginalConditions  []string      `json:"original_conditions" yaml:"original_conditions"`
	OptimizedConditions []string      `json:"optimized_conditions" yaml:"optimized_conditions"`
	ExecutionPlan       []planStepDoc `json:"execution_plan" yaml:"execution_plan"`
	Summary             string        `json:"optimization_summary" yaml:"optimization_summary"`
}

func newPlanDoc(oq *OptimizedQuery) planDoc {
	doc := planDoc{
		Table:               oq.Table,
		OriginalConditions:  make([]string, 0, len(oq.Original)),
		OptimizedConditions: make([]string, 0, len(oq.Optimized)),
		ExecutionPlan:       make([]planStepDoc, 0, len(oq.Plan)),
		Summary:             oq.Summary,
	}

	for _, condition := range oq.Original {
		doc.OriginalConditions = append(doc.OriginalConditions, condition.String())
	}
	for _, condition := range oq.Optimized {
		doc.OptimizedConditions = append(doc.OptimizedConditions, condition.String())
	}
	for _, step := range oq.Plan {
		doc.ExecutionPlan = append(doc.ExecutionPlan, planStepDoc{step.Step, step.Description})
	}

	return doc
}

func (o DefaultOutput) Output(oq *OptimizedQuery) (string, error) {
	b := strings.Builder{}
	o.WritePlan(&b, oq)

	return b.String(), nil
}

func (o DefaultOutput) OutputTo(w io.Writer, oq *OptimizedQuery) (int, error) {
	return o.WritePlan(w, oq)
}

func (o DefaultOutput) WritePlan(w io.Writer, oq *OptimizedQuery) (int, error) {
	total := 0

	n, err := fmt.Fprintf(w, "Table: %s\n", oq.Table)
	total += n
	if err != nil {
		return total, err
	}

	n, err = writeConditionList(w, "Original conditions:", oq.Original)
	total += n
	if err != nil {
		return total, err
	}

	n, err = writeConditionList(w, "Optimized conditions:", oq.Optimized)
	total += n
	if err != nil {
		return total, err
	}

	if len(oq.Plan) > 0 {
		n, err = fmt.Fprintln(w, "Execution plan:")
		total += n
		if err != nil {
			return total, err
		}
		for _, step := range oq.Plan {
			n, err = fmt.Fprintf(w, "  Step %d: %s\n", step.Step, step.Description)
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprintf(w, "Summary: %s\n", oq.Summary)
	total += n

	return total, err
}

func writeConditionList(w io.Writer, header string, conditions []Condition) (int, error) {
	total := 0

	n, err := fmt.Fprintln(w, header)
	total += n
	if err != nil {
		return total, err
	}

	if len(conditions) == 0 {
		n, err = fmt.Fprintln(w, "  (none)")
		total += n
		return total, err
	}

	for i, condition := range conditions {
		n, err = fmt.Fprintf(w, "  %d. %s\n", i+1, condition)
		total += n
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

func (o JsonOutput) Output(oq *OptimizedQuery) (string, error) {
	buf, err := json.Marshal(newPlanDoc(oq))
	if err != nil {
		return "", err
	}

	return string(buf), nil
}

func (o JsonOutput) OutputTo(w io.Writer, oq *OptimizedQuery) (int, error) {
	buf, err := json.Marshal(newPlanDoc(oq))
	if err != nil {
		return 0, err
	}

	return w.Write(buf)
}

func (o YamlOutput) Output(oq *OptimizedQuery) (string, error) {
	buf, err := yaml.Marshal(newPlanDoc(oq))
	if err != nil {
		return "", err
	}

	return string(buf), nil
}

func (o YamlOutput) OutputTo(w io.Writer, oq *OptimizedQuery) (int, error) {
	buf, err := yaml.Marshal(newPlanDoc(oq))
	if err != nil {
		return 0, err
	}

	return w.Write(buf)
}
