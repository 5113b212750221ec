package expr

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnknownFunction = errors.New("unknown function")
	ErrUnknownVariable = errors.New("unknown variable")
	ErrArity           = errors.New("wrong number of variables")
	ErrDuplicateVar    = errors.New("duplicate variable")
)

// SyntaxError reports a malformed expression and where it went wrong.
type SyntaxError struct {
	Pos int    // Byte offset in the source
	Msg string // What was wrong
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}
