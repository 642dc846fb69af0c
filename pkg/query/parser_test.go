package query_test

import (
	"errors"
	"testing"

	"github.com/jpappel/squint/pkg/query"
)

const (
	OP_EQ   = query.OP_EQ
	OP_NE   = query.OP_NE
	OP_LT   = query.OP_LT
	OP_LE   = query.OP_LE
	OP_GE   = query.OP_GE
	OP_GT   = query.OP_GT
	OP_LIKE = query.OP_LIKE
)

func str(s string) query.Valuer {
	return query.StringValue{S: s}
}

func num(n float64) query.Valuer {
	return query.NumberValue{N: n}
}

func conditionsEqual(a, b []query.Condition) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !query.ConditionEq(a[i], b[i]) {
			return false
		}
	}
	return true
}

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		sql            string
		wantTable      string
		wantConditions []query.Condition
		wantErr        error
	}{
		{
			"canonical form",
			"SELECT * FROM t WHERE a = 1 AND b > 2",
			"t",
			[]query.Condition{
				{Column: "a", Operator: OP_EQ, Value: num(1)},
				{Column: "b", Operator: OP_GT, Value: num(2)},
			},
			nil,
		},
		{
			"no where clause",
			"SELECT * FROM t",
			"t",
			nil,
			nil,
		},
		{
			"trailing semicolon",
			"select * from users;",
			"users",
			nil,
			nil,
		},
		{
			"lowercase keywords",
			"select * from users where country = 'US' and age > 25",
			"users",
			[]query.Condition{
				{Column: "country", Operator: OP_EQ, Value: str("US")},
				{Column: "age", Operator: OP_GT, Value: num(25)},
			},
			nil,
		},
		{
			"operator normalization",
			"SELECT * FROM t WHERE a == 1 AND b <> 2 AND c ILIKE 'x%'",
			"t",
			[]query.Condition{
				{Column: "a", Operator: OP_EQ, Value: num(1)},
				{Column: "b", Operator: OP_NE, Value: num(2)},
				{Column: "c", Operator: OP_LIKE, Value: str("x%")},
			},
			nil,
		},
		{
			"compound operators lex whole",
			"SELECT * FROM t WHERE a >= 1 AND b <= 2",
			"t",
			[]query.Condition{
				{Column: "a", Operator: OP_GE, Value: num(1)},
				{Column: "b", Operator: OP_LE, Value: num(2)},
			},
			nil,
		},
		{
			"double quoted string",
			`SELECT * FROM people WHERE name = "Grace Hopper"`,
			"people",
			[]query.Condition{
				{Column: "name", Operator: OP_EQ, Value: str("Grace Hopper")},
			},
			nil,
		},
		{
			"bare word value parses as string",
			"SELECT * FROM t WHERE status = active",
			"t",
			[]query.Condition{
				{Column: "status", Operator: OP_EQ, Value: str("active")},
			},
			nil,
		},
		{
			"float value",
			"SELECT * FROM t WHERE price < 9.99",
			"t",
			[]query.Condition{
				{Column: "price", Operator: OP_LT, Value: num(9.99)},
			},
			nil,
		},
		{
			"column projection rejected",
			"SELECT name FROM users",
			"", nil,
			query.ErrQueryFormat,
		},
		{
			"not a select",
			"DELETE FROM users",
			"", nil,
			query.ErrQueryFormat,
		},
		{
			"missing table",
			"SELECT * FROM",
			"", nil,
			query.ErrMissingTable,
		},
		{
			"garbage after table",
			"SELECT * FROM t ORDER BY a",
			"", nil,
			query.ErrQueryFormat,
		},
		{
			"empty where clause",
			"SELECT * FROM t WHERE",
			"", nil,
			query.ErrBadCondition,
		},
		{
			"condition without operator",
			"SELECT * FROM t WHERE age 25",
			"", nil,
			query.ErrBadCondition,
		},
		{
			"condition with two operators",
			"SELECT * FROM t WHERE a = 1 = 2",
			"", nil,
			query.ErrBadCondition,
		},
		{
			"missing and between conditions",
			"SELECT * FROM t WHERE a = 1 b = 2",
			"", nil,
			query.ErrBadCondition,
		},
		{
			"trailing and",
			"SELECT * FROM t WHERE a = 1 AND",
			"", nil,
			query.ErrBadCondition,
		},
		{
			"unterminated string literal",
			"SELECT * FROM t WHERE country = 'US",
			"", nil,
			query.ErrBadCondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := query.Parse(tt.sql)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Recieved unexpected error: got %v want %v", err, tt.wantErr)
			} else if err != nil {
				var parseErr *query.ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("Expected a *ParseError, got %T", err)
				}
				return
			}

			if got.Table != tt.wantTable {
				t.Errorf("Got table %q want %q", got.Table, tt.wantTable)
			}

			if !conditionsEqual(got.Conditions, tt.wantConditions) {
				t.Error("Got different conditions than wanted")
				t.Logf("Wanted:\t%v", tt.wantConditions)
				t.Logf("Got:\t%v", got.Conditions)
			}
		})
	}
}

func TestParse_PreservesSourceOrder(t *testing.T) {
	q, err := query.Parse("SELECT * FROM t WHERE z = 1 AND a = 2 AND m = 3")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"z", "a", "m"}
	for i, condition := range q.Conditions {
		if condition.Column != want[i] {
			t.Errorf("Condition %d: got column %q want %q", i, condition.Column, want[i])
		}
	}
}

func TestConditionString(t *testing.T) {
	tests := []struct {
		name      string
		condition query.Condition
		want      string
	}{
		{"numeric", query.Condition{Column: "age", Operator: OP_GT, Value: num(25)}, "age > 25"},
		{"string", query.Condition{Column: "country", Operator: OP_EQ, Value: str("US")}, "country = 'US'"},
		{"pattern", query.Condition{Column: "name", Operator: OP_LIKE, Value: str("A%")}, "name LIKE 'A%'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.condition.String(); got != tt.want {
				t.Errorf("Got %q want %q", got, tt.want)
			}
		})
	}
}
