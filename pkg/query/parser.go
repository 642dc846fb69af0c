package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type opType int

const (
	OP_UNKNOWN opType = iota
	OP_EQ             // equal
	OP_NE             // not equal
	OP_LT             // less than
	OP_LE             // less than or equal
	OP_GE             // greater than or equal
	OP_GT             // greater than
	OP_LIKE           // pattern match
)

func (t opType) String() string {
	switch t {
	case OP_EQ:
		return "Equal"
	case OP_NE:
		return "Not Equal"
	case OP_LT:
		return "Less Than"
	case OP_LE:
		return "Less Than or Equal"
	case OP_GE:
		return "Greater Than or Equal"
	case OP_GT:
		return "Greater Than"
	case OP_LIKE:
		return "Pattern Match"
	default:
		return "Invalid"
	}
}

// Symbol returns the normalized spelling of an operator
func (t opType) Symbol() string {
	switch t {
	case OP_EQ:
		return "="
	case OP_NE:
		return "!="
	case OP_LT:
		return "<"
	case OP_LE:
		return "<="
	case OP_GE:
		return ">="
	case OP_GT:
		return ">"
	case OP_LIKE:
		return "LIKE"
	default:
		return "?"
	}
}

func (t opType) IsRange() bool {
	return t == OP_LT || t == OP_LE || t == OP_GE || t == OP_GT
}

type valuerType int

const (
	VAL_NOOP valuerType = iota
	VAL_STR
	VAL_NUM
)

type Valuer interface {
	Type() valuerType
	Compare(Valuer) int
	// Literal is the bare literal text, without quoting
	Literal() string
	String() string
}

var _ Valuer = StringValue{}
var _ Valuer = NumberValue{}

type StringValue struct {
	S string
}

func (v StringValue) Type() valuerType {
	return VAL_STR
}

func (v StringValue) Compare(other Valuer) int {
	o, ok := other.(StringValue)
	if !ok {
		return 0
	}

	if v.S < o.S {
		return -1
	} else if v.S > o.S {
		return 1
	} else {
		return 0
	}
}

func (v StringValue) Literal() string {
	return v.S
}

func (v StringValue) String() string {
	return "'" + v.S + "'"
}

type NumberValue struct {
	N float64
}

func (v NumberValue) Type() valuerType {
	return VAL_NUM
}

func (v NumberValue) Compare(other Valuer) int {
	o, ok := other.(NumberValue)
	if !ok {
		return 0
	}

	if v.N < o.N {
		return -1
	} else if v.N > o.N {
		return 1
	} else {
		return 0
	}
}

func (v NumberValue) Literal() string {
	return strconv.FormatFloat(v.N, 'f', -1, 64)
}

func (v NumberValue) String() string {
	return v.Literal()
}

// A single WHERE condition. Immutable once parsed.
type Condition struct {
	Column   string
	Operator opType
	Value    Valuer
}

func (c Condition) String() string {
	if c.Value == nil {
		return fmt.Sprint(c.Column, " ", c.Operator.Symbol())
	}

	return fmt.Sprint(c.Column, " ", c.Operator.Symbol(), " ", c.Value)
}

func ConditionEq(a, b Condition) bool {
	if a.Column != b.Column || a.Operator != b.Operator {
		return false
	}
	if a.Value == nil || b.Value == nil {
		return a.Value == b.Value
	}

	return a.Value.Type() == b.Value.Type() && a.Value.Compare(b.Value) == 0
}

// A parsed SELECT statement. Conditions preserve source order.
type Query struct {
	Table      string
	Conditions []Condition
	Raw        string
}

var selectPrefixRegex = regexp.MustCompile(`(?i)^select\s+\*\s+from\b`)
var tableRegex = regexp.MustCompile(`^[A-Za-z_]\w*`)
var whereRegex = regexp.MustCompile(`(?i)^where\b`)

// convert a token to an operator
func tokToOp(t queryTokenType) opType {
	switch t {
	case TOK_OP_EQ:
		return OP_EQ
	case TOK_OP_NE:
		return OP_NE
	case TOK_OP_LT:
		return OP_LT
	case TOK_OP_LE:
		return OP_LE
	case TOK_OP_GE:
		return OP_GE
	case TOK_OP_GT:
		return OP_GT
	case TOK_OP_LIKE:
		return OP_LIKE
	default:
		return OP_UNKNOWN
	}
}

// Parse a statement of the form
//
//	SELECT * FROM <table> [WHERE <condition> [AND <condition>]...]
//
// Keywords are case-insensitive and a trailing semicolon is allowed.
// A statement without a WHERE clause parses to an empty condition list.
// All failures are a *ParseError.
func Parse(sql string) (Query, error) {
	stripped := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sql), ";"))

	loc := selectPrefixRegex.FindStringIndex(stripped)
	if loc == nil {
		return Query{}, &ParseError{Segment: stripped, err: ErrQueryFormat}
	}

	rest := strings.TrimSpace(stripped[loc[1]:])
	table := tableRegex.FindString(rest)
	if table == "" {
		return Query{}, &ParseError{Segment: rest, err: ErrMissingTable}
	}
	rest = strings.TrimSpace(rest[len(table):])

	q := Query{Table: table, Raw: sql}
	if rest == "" {
		return q, nil
	}

	whereLoc := whereRegex.FindStringIndex(rest)
	if whereLoc == nil {
		return Query{}, &ParseError{Segment: rest, err: ErrQueryFormat}
	}

	conditions, err := parseConditions(Lex(rest[whereLoc[1]:]))
	if err != nil {
		return Query{}, err
	}
	q.Conditions = conditions

	return q, nil
}

func parseConditions(tokens []Token) ([]Condition, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{err: ErrBadCondition}
	}

	conditions := make([]Condition, 0, (len(tokens)+1)/4)

	var prevToken Token
	for i, token := range tokens {
		if i != 0 {
			prevToken = tokens[i-1]
		}

		switch token.Type {
		case TOK_IDENT:
			if i != 0 && prevToken.Type != TOK_KW_AND {
				return nil, &ParseError{Segment: token.Value, err: ErrBadCondition}
			}
			conditions = append(conditions, Condition{Column: token.Value})
		case TOK_OP_EQ, TOK_OP_NE, TOK_OP_LT, TOK_OP_LE, TOK_OP_GE, TOK_OP_GT, TOK_OP_LIKE:
			if prevToken.Type != TOK_IDENT {
				return nil, &ParseError{Segment: token.Value, err: ErrBadCondition}
			}
			conditions[len(conditions)-1].Operator = tokToOp(token.Type)
		case TOK_VAL_STR:
			if !prevToken.Type.isOperator() {
				return nil, &ParseError{Segment: token.Value, err: ErrBadCondition}
			}
			conditions[len(conditions)-1].Value = StringValue{token.Value}
		case TOK_VAL_NUM:
			if !prevToken.Type.isOperator() {
				return nil, &ParseError{Segment: token.Value, err: ErrBadCondition}
			}

			n, err := strconv.ParseFloat(token.Value, 64)
			if err != nil {
				return nil, &ParseError{Segment: token.Value, err: ErrBadCondition}
			}
			conditions[len(conditions)-1].Value = NumberValue{n}
		case TOK_KW_AND:
			if !prevToken.Type.isValue() {
				return nil, &ParseError{Segment: token.Value, err: ErrBadCondition}
			}
		default:
			return nil, &ParseError{Segment: token.Value, err: ErrBadCondition}
		}
	}

	if last := tokens[len(tokens)-1]; !last.Type.isValue() {
		return nil, &ParseError{Segment: last.Value, err: ErrBadCondition}
	}

	return conditions, nil
}
