package query_test

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/jpappel/squint/pkg/query"
)

func optimized(t *testing.T, sql string) *query.OptimizedQuery {
	t.Helper()
	oq := query.Optimize(mustParse(t, sql))
	return &oq
}

func TestDefaultOutput(t *testing.T) {
	oq := optimized(t, "SELECT * FROM users WHERE age > 25 AND country = 'US'")

	out, err := query.DefaultOutput{}.Output(oq)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"Table: users",
		"Original conditions:",
		"  1. age > 25",
		"  2. country = 'US'",
		"Optimized conditions:",
		"  1. country = 'US'",
		"  2. age > 25",
		"Execution plan:",
		"  Step 1: Apply filter: country = 'US'",
		"Summary: ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output", want)
			t.Log("Got:\n" + out)
		}
	}
}

func TestDefaultOutput_Empty(t *testing.T) {
	oq := optimized(t, "SELECT * FROM users")

	b := strings.Builder{}
	n, err := query.DefaultOutput{}.OutputTo(&b, oq)
	if err != nil {
		t.Fatal(err)
	}
	out := b.String()

	if n != len(out) {
		t.Errorf("Reported %d bytes written, wrote %d", n, len(out))
	}
	if !strings.Contains(out, "  (none)") {
		t.Error("Expected placeholder for empty condition lists")
	}
	if strings.Contains(out, "Execution plan:") {
		t.Error("Expected no execution plan section for an empty query")
	}
}

func TestJsonOutput(t *testing.T) {
	oq := optimized(t, "SELECT * FROM users WHERE age > 25 AND country = 'US'")

	out, err := query.JsonOutput{}.Output(oq)
	if err != nil {
		t.Fatal(err)
	}

	doc := struct {
		Table               string   `json:"table"`
		OriginalConditions  []string `json:"original_conditions"`
		OptimizedConditions []string `json:"optimized_conditions"`
		ExecutionPlan       []struct {
			Step        int    `json:"step"`
			Description string `json:"description"`
		} `json:"execution_plan"`
		Summary string `json:"optimization_summary"`
	}{}

	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatal(err)
	}

	if doc.Table != "users" {
		t.Errorf("Got table %q", doc.Table)
	}
	if want := []string{"age > 25", "country = 'US'"}; !slices.Equal(doc.OriginalConditions, want) {
		t.Errorf("Got original conditions %v", doc.OriginalConditions)
	}
	if want := []string{"country = 'US'", "age > 25"}; !slices.Equal(doc.OptimizedConditions, want) {
		t.Errorf("Got optimized conditions %v", doc.OptimizedConditions)
	}
	if len(doc.ExecutionPlan) != 2 || doc.ExecutionPlan[0].Step != 1 {
		t.Errorf("Got execution plan %v", doc.ExecutionPlan)
	}
	if doc.Summary == "" {
		t.Error("Missing summary")
	}
}

func TestYamlOutput(t *testing.T) {
	oq := optimized(t, "SELECT * FROM users WHERE age > 25 AND country = 'US'")

	out, err := query.YamlOutput{}.Output(oq)
	if err != nil {
		t.Fatal(err)
	}

	doc := struct {
		Table               string   `yaml:"table"`
		OptimizedConditions []string `yaml:"optimized_conditions"`
	}{}

	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatal(err)
	}

	if doc.Table != "users" {
		t.Errorf("Got table %q", doc.Table)
	}
	if want := []string{"country = 'US'", "age > 25"}; !slices.Equal(doc.OptimizedConditions, want) {
		t.Errorf("Got optimized conditions %v", doc.OptimizedConditions)
	}
}
