// Package vm provides error handling for the tinyexp execution engine.
package vm

import (
	"fmt"
)

// ErrorType represents the type of runtime error.
type ErrorType string

const (
	// Declaration errors
	ErrorVariableMultipleDeclaration ErrorType = "VARIABLE_MULTIPLE_DECLARATION"
	ErrorFunctionMultipleDeclaration ErrorType = "FUNCTION_MULTIPLE_DECLARATION"

	// Resolution errors
	ErrorUnknownVariable ErrorType = "UNKNOWN_VARIABLE"
	ErrorUnknownFunction ErrorType = "UNKNOWN_FUNCTION"

	// Call and evaluation errors
	ErrorInvalidArgumentsNumber ErrorType = "INVALID_ARGUMENTS_NUMBER"
	ErrorLiteralNotANumber      ErrorType = "LITERAL_NOT_A_NUMBER"
	ErrorUnknownOperation       ErrorType = "UNKNOWN_OPERATION"
	ErrorDivisionByZero         ErrorType = "DIVISION_BY_ZERO"
	ErrorVoidValue              ErrorType = "VOID_VALUE"

	// Fatal resource errors
	ErrorStackOverflow ErrorType = "STACK_OVERFLOW"
)

// RuntimeError represents a runtime error in the VM.
// Every RuntimeError aborts the run that raised it.
type RuntimeError struct {
	Type    ErrorType
	Message string
	Line    int // Line number if available, -1 otherwise
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("[%s] %s at line %d", e.Type, e.Message, e.Line)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// NewRuntimeError creates a new RuntimeError.
func NewRuntimeError(errType ErrorType, message string) *RuntimeError {
	return &RuntimeError{
		Type:    errType,
		Message: message,
		Line:    -1,
	}
}

// NewRuntimeErrorWithLine creates a new RuntimeError with line information.
func NewRuntimeErrorWithLine(errType ErrorType, message string, line int) *RuntimeError {
	return &RuntimeError{
		Type:    errType,
		Message: message,
		Line:    line,
	}
}

// Error helper functions for common error types

// NewVariableMultipleDeclarationError creates an error for a var that redeclares a name
// already owned by the current scope.
func NewVariableMultipleDeclarationError(name string, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorVariableMultipleDeclaration,
		fmt.Sprintf("variable %s is already declared in this scope", name), line)
}

// NewFunctionMultipleDeclarationError creates an error for a fun that redeclares a name
// already owned by the current scope.
func NewFunctionMultipleDeclarationError(name string, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorFunctionMultipleDeclaration,
		fmt.Sprintf("function %s is already declared in this scope", name), line)
}

// NewUnknownVariableError creates an unknown variable error.
func NewUnknownVariableError(name string, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorUnknownVariable, fmt.Sprintf("unknown variable: %s", name), line)
}

// NewUnknownFunctionError creates an unknown function error.
func NewUnknownFunctionError(name string, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorUnknownFunction, fmt.Sprintf("unknown function: %s", name), line)
}

// NewInvalidArgumentsNumberError creates an arity mismatch error.
// line is the call site; the definition line is part of the message.
func NewInvalidArgumentsNumberError(fn *Function, got, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorInvalidArgumentsNumber,
		fmt.Sprintf("function %s (defined at line %d) expects %d arguments, got %d",
			fn.Name, fn.Line, fn.Arity(), got), line)
}

// NewLiteralNotANumberError creates an error for an integer literal that does not parse.
func NewLiteralNotANumberError(text string, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorLiteralNotANumber, fmt.Sprintf("literal is not a number: %s", text), line)
}

// NewUnknownOperationError creates an error for an operator missing from the operator table.
func NewUnknownOperationError(operator string, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorUnknownOperation, fmt.Sprintf("unknown operation: %s", operator), line)
}

// NewDivisionByZeroError creates a division by zero error.
func NewDivisionByZeroError(operator string, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorDivisionByZero, fmt.Sprintf("division by zero in %s", operator), line)
}

// NewVoidValueError creates an error for a built-in call used where a value is required.
func NewVoidValueError(name string, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorVoidValue,
		fmt.Sprintf("built-in function %s does not return a value", name), line)
}

// NewStackOverflowError creates a stack overflow error.
func NewStackOverflowError(depth, max, line int) *RuntimeError {
	return NewRuntimeErrorWithLine(ErrorStackOverflow,
		fmt.Sprintf("stack overflow: depth %d exceeds maximum %d", depth, max), line)
}
