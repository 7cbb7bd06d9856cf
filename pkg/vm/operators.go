package vm

import (
	"errors"
)

// ErrDivisionByZero is returned by the / and % operators when the right operand is 0.
var ErrDivisionByZero = errors.New("division by zero")

// OperatorFunc applies a binary operator to two evaluated operands.
type OperatorFunc func(left, right int64) (int64, error)

// Operators is the fixed operator table.
// Relational, equality and logical operators yield 0 or 1. Logical operators
// treat any nonzero operand as true; both operands have already been evaluated
// when the function runs, so || and && never short-circuit.
var Operators = map[string]OperatorFunc{
	"+": func(l, r int64) (int64, error) { return l + r, nil },
	"-": func(l, r int64) (int64, error) { return l - r, nil },
	"*": func(l, r int64) (int64, error) { return l * r, nil },
	"/": func(l, r int64) (int64, error) {
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	},
	"%": func(l, r int64) (int64, error) {
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l % r, nil
	},
	">":  func(l, r int64) (int64, error) { return boolToInt(l > r), nil },
	"<":  func(l, r int64) (int64, error) { return boolToInt(l < r), nil },
	">=": func(l, r int64) (int64, error) { return boolToInt(l >= r), nil },
	"<=": func(l, r int64) (int64, error) { return boolToInt(l <= r), nil },
	"==": func(l, r int64) (int64, error) { return boolToInt(l == r), nil },
	"!=": func(l, r int64) (int64, error) { return boolToInt(l != r), nil },
	"||": func(l, r int64) (int64, error) { return boolToInt(l != 0 || r != 0), nil },
	"&&": func(l, r int64) (int64, error) { return boolToInt(l != 0 && r != 0), nil },
}

// boolToInt converts a boolean to int64 (1 for true, 0 for false).
func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
