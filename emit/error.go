package emit

import (
	"errors"
	"fmt"
)

// Compile errors. These are whole-tree properties, so they can only be
// detected once the final tree is serialized.
var (
	// ErrDuplicateGroupName indicates two capturing groups with one name.
	ErrDuplicateGroupName = errors.New("duplicate group name")

	// ErrUnknownGroupReference indicates a backreference to a name or index
	// that no capturing group in the tree declares.
	ErrUnknownGroupReference = errors.New("unknown group reference")

	// ErrTooComplex indicates a tree nested deeper than Config.MaxDepth.
	ErrTooComplex = errors.New("pattern too complex")

	// ErrInvalidNode indicates a node the combinators would have rejected,
	// such as an alternation without branches or a reversed quantifier,
	// built directly from ast values.
	ErrInvalidNode = errors.New("invalid node")
)

// CompileError wraps serialization errors with the offending detail.
type CompileError struct {
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("scrive: compile: %v: %s", e.Err, e.Detail)
	}
	return fmt.Sprintf("scrive: compile: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
