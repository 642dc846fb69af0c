package query

import (
	"errors"
	"fmt"
)

var ErrQueryFormat = errors.New("Incorrect statement format, expected SELECT * FROM <table> [WHERE <condition> [AND <condition>]...]")
var ErrMissingTable = errors.New("Missing table name after FROM")
var ErrBadCondition = errors.New("Malformed WHERE condition")

// ParseError wraps one of the sentinel parse errors together with the part
// of the statement that failed to parse.
type ParseError struct {
	Segment string
	err     error
}

func (e *ParseError) Error() string {
	if e.Segment == "" {
		return e.err.Error()
	}

	return fmt.Sprintf("%s: `%s`", e.err, e.Segment)
}

func (e *ParseError) Unwrap() error {
	return e.err
}
