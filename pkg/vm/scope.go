// Package vm provides scope management for the tinyexp execution engine.
package vm

import (
	"errors"
)

// ErrAlreadyDeclared is returned when a name is declared twice in the same scope.
var ErrAlreadyDeclared = errors.New("already declared in this scope")

// Scope represents one level of the lexical environment.
// Variables and functions live in separate namespaces, so a name may denote
// both at the same time.
//
// Shadowing across scopes is allowed; declaring a name twice within one scope is not.
type Scope struct {
	variables map[string]int64
	functions map[string]*Function
	parent    *Scope
}

// NewScope creates a new scope with an optional parent scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		variables: make(map[string]int64),
		functions: make(map[string]*Function),
		parent:    parent,
	}
}

// DeclareVariable adds a variable binding to this scope.
// It returns ErrAlreadyDeclared if the name is already bound here; bindings
// in parent scopes are not considered.
func (s *Scope) DeclareVariable(name string, value int64) error {
	if _, ok := s.variables[name]; ok {
		return ErrAlreadyDeclared
	}
	s.variables[name] = value
	return nil
}

// DeclareFunction adds a function binding to this scope.
// It follows the same no-redeclare rule as DeclareVariable.
func (s *Scope) DeclareFunction(name string, fn *Function) error {
	if _, ok := s.functions[name]; ok {
		return ErrAlreadyDeclared
	}
	s.functions[name] = fn
	return nil
}

// LookupVariable retrieves a variable value by name.
// It first searches the current scope, then parent scopes.
//
// Returns:
//   - int64: The value of the nearest enclosing binding
//   - bool: true if the variable was found, false otherwise
func (s *Scope) LookupVariable(name string) (int64, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if value, ok := scope.variables[name]; ok {
			return value, true
		}
	}
	return 0, false
}

// AssignVariable updates the nearest enclosing binding of name in place.
// Assignment never declares: if no scope in the chain owns the name,
// ok is false and nothing changes.
//
// Returns:
//   - int64: The value held before the assignment
//   - bool: true if a binding was found and updated
func (s *Scope) AssignVariable(name string, value int64) (int64, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if prev, ok := scope.variables[name]; ok {
			scope.variables[name] = value
			return prev, true
		}
	}
	return 0, false
}

// LookupFunction retrieves a function by name, searching parent scopes upward.
func (s *Scope) LookupFunction(name string) (*Function, bool) {
	for scope := s; scope != nil; scope = scope.parent {
		if fn, ok := scope.functions[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// HasLocalVariable checks if a variable exists only in the current scope.
func (s *Scope) HasLocalVariable(name string) bool {
	_, ok := s.variables[name]
	return ok
}

// HasLocalFunction checks if a function exists only in the current scope.
func (s *Scope) HasLocalFunction(name string) bool {
	_, ok := s.functions[name]
	return ok
}

// Parent returns the parent scope.
//
// Returns:
//   - *Scope: The parent scope, or nil if this is the root scope
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Depth returns the number of ancestors of this scope. The root scope has depth 0.
func (s *Scope) Depth() int {
	depth := 0
	for scope := s.parent; scope != nil; scope = scope.parent {
		depth++
	}
	return depth
}
