package ast

import (
	"errors"
	"fmt"
)

// ErrUndeclaredVariable is reported when a variable is read before any
// assignment to it. Both backends wrap it so callers can use errors.Is.
var ErrUndeclaredVariable = errors.New("undeclared variable")

// UndeclaredVariableError names the variable that was read before being assigned
type UndeclaredVariableError struct {
	Name string
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("use of undeclared variable %q", e.Name)
}

func (e *UndeclaredVariableError) Unwrap() error {
	return ErrUndeclaredVariable
}
