package query

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

type queryTokenType int

var LexRegex *regexp.Regexp
var LexRegexPattern string

var numericRegex = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

const (
	TOK_UNKNOWN queryTokenType = iota

	TOK_KW_AND // condition conjunction

	// condition tokens
	TOK_IDENT // column identifier

	// operators
	TOK_OP_EQ   // equal
	TOK_OP_NE   // not equal
	TOK_OP_LT   // less than
	TOK_OP_LE   // less than or equal
	TOK_OP_GE   // greater than or equal
	TOK_OP_GT   // greater than
	TOK_OP_LIKE // pattern match

	// values
	TOK_VAL_STR
	TOK_VAL_NUM
)

type Token struct {
	Type  queryTokenType
	Value string
}

func (tokType queryTokenType) String() string {
	switch tokType {
	case TOK_UNKNOWN:
		return "Unknown"
	case TOK_KW_AND:
		return "And"
	case TOK_IDENT:
		return "Identifier"
	case TOK_OP_EQ:
		return "Equal"
	case TOK_OP_NE:
		return "Not Equal"
	case TOK_OP_LT:
		return "Less Than"
	case TOK_OP_LE:
		return "Less Than or Equal"
	case TOK_OP_GE:
		return "Greater Than or Equal"
	case TOK_OP_GT:
		return "Greater Than"
	case TOK_OP_LIKE:
		return "Pattern Match"
	case TOK_VAL_STR:
		return "String Value"
	case TOK_VAL_NUM:
		return "Numeric Value"
	default:
		return "Invalid"
	}
}

func (t Token) String() string {
	return fmt.Sprint(t.Type.String(), ": ", t.Value)
}

// if a token type is one of any
func (tokType queryTokenType) Any(expected ...queryTokenType) bool {
	return slices.Contains(expected, tokType)
}

func (t queryTokenType) isOperator() bool {
	return t.Any(TOK_OP_EQ, TOK_OP_NE, TOK_OP_LT, TOK_OP_LE, TOK_OP_GE, TOK_OP_GT, TOK_OP_LIKE)
}

func (t queryTokenType) isValue() bool {
	return t == TOK_VAL_STR || t == TOK_VAL_NUM
}

// Lex tokenizes the text of a WHERE clause into AND keywords and
// column/operator/value triplets. Anything that does not lex becomes a
// TOK_UNKNOWN token so the parser can report the offending substring.
func Lex(whereClause string) []Token {
	const (
		MATCH = iota
		AND
		CONDITION
		COLUMN
		OPERATOR
		VALUE
		UNKNOWN
	)

	matches := LexRegex.FindAllStringSubmatch(whereClause, -1)
	tokens := make([]Token, 0, 3*len(matches))

	for _, match := range matches {
		if match[AND] != "" {
			tokens = append(tokens, Token{TOK_KW_AND, match[AND]})
		}
		if match[CONDITION] != "" {
			tokens = append(tokens, Token{TOK_IDENT, match[COLUMN]})
			tokens = append(tokens, tokenizeOperator(match[OPERATOR]))
			tokens = append(tokens, tokenizeValue(match[VALUE]))
		}
		if match[UNKNOWN] != "" {
			tokens = append(tokens, Token{Value: match[UNKNOWN]})
		}
	}

	return tokens
}

func tokenizeOperator(s string) Token {
	t := Token{Value: s}
	switch strings.ToUpper(s) {
	case "=", "==":
		t.Type = TOK_OP_EQ
	case "!=", "<>":
		t.Type = TOK_OP_NE
	case "<":
		t.Type = TOK_OP_LT
	case "<=":
		t.Type = TOK_OP_LE
	case ">=":
		t.Type = TOK_OP_GE
	case ">":
		t.Type = TOK_OP_GT
	case "LIKE", "ILIKE":
		t.Type = TOK_OP_LIKE
	}

	return t
}

func tokenizeValue(s string) Token {
	if len(s) >= 2 && (s[0] == '\'' && s[len(s)-1] == '\'' || s[0] == '"' && s[len(s)-1] == '"') {
		return Token{TOK_VAL_STR, s[1 : len(s)-1]}
	}
	// an opening quote without a closing one is not a literal
	if s[0] == '\'' || s[0] == '"' {
		return Token{Value: s}
	}
	if numericRegex.MatchString(s) {
		return Token{TOK_VAL_NUM, s}
	}
	return Token{TOK_VAL_STR, s}
}

func TokensStringify(tokens []Token) string {
	b := strings.Builder{}

	for _, token := range tokens {
		b.WriteByte('`')
		b.WriteString(token.String())
		b.WriteByte('`')
		b.WriteByte('\n')
	}

	return b.String()
}

func init() {
	columnPattern := `(?P<column>[A-Za-z_]\w*)`
	// longest spellings first, otherwise `>=` lexes as `>` then `=`
	opPattern := `(?P<operator>(?i:ilike\b|like\b)|>=|<=|!=|<>|==|=|>|<)`
	valPattern := `(?P<value>'[^']*'|"[^"]*"|\S+)`
	condPattern := `(?P<condition>` + columnPattern + `\s*` + opPattern + `\s*` + valPattern + `)`

	andPattern := `(?P<and>(?i:\band\b))`
	unknownPattern := `(?P<unknown>\S+)`

	LexRegexPattern = `\s*(?:` + andPattern + `|` + condPattern + `|` + unknownPattern + `)`
	LexRegex = regexp.MustCompile(LexRegexPattern)
}
