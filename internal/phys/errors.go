package phys

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by all calculators.
var (
	// ErrInvalidInput indicates a value outside its physical domain
	// (non-positive mass, volume, density, width).
	ErrInvalidInput = errors.New("phys: invalid input")

	// ErrDivisionByZero indicates an input that drives a denominator to zero.
	ErrDivisionByZero = errors.New("phys: division by zero")

	// ErrOutOfRange indicates a target the physics cannot reach.
	ErrOutOfRange = errors.New("phys: out of range")

	// ErrNotImplemented indicates a selectable variant with no formula.
	ErrNotImplemented = errors.New("phys: not implemented")
)

// CalcError wraps a sentinel with the operation that produced it.
type CalcError struct {
	Op     string
	Detail string
	Err    error
}

func (e *CalcError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v (%s)", e.Op, e.Err, e.Detail)
}

func (e *CalcError) Unwrap() error {
	return e.Err
}

// Errorf builds a CalcError with a formatted detail message.
func Errorf(op string, sentinel error, format string, args ...any) error {
	return &CalcError{Op: op, Err: sentinel, Detail: fmt.Sprintf(format, args...)}
}
