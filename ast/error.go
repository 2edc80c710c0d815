package ast

import (
	"errors"
	"fmt"
)

// Construction errors, detected by the combinator that builds the node.
var (
	// ErrInvalidQuantifier indicates a negative repetition count or min > max.
	ErrInvalidQuantifier = errors.New("invalid quantifier")

	// ErrInvalidArgument indicates an argument a combinator cannot accept,
	// such as a reversed character range or a malformed group name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyAlternation indicates an alternation without branches.
	ErrEmptyAlternation = errors.New("empty alternation")
)

// ConstructionError reports a locally detectable violation raised while
// building a node.
type ConstructionError struct {
	// Op is the combinator that failed, e.g. "Between".
	Op     string
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("scrive: %s: %v: %s", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("scrive: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// ValidGroupName reports whether name is a legal group name: ASCII letters,
// digits and underscores, not starting with a digit.
func ValidGroupName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
