package vm

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property-based tests for Scope management.

// TestProperty_ScopeLookup tests that declared variables are found through the
// whole chain below the declaring scope.
// スコープチェーンの上方向探索
func TestProperty_ScopeLookup(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("declared variable is visible from any descendant", prop.ForAll(
		func(name string, value int64, depth int) bool {
			root := NewScope(nil)
			if err := root.DeclareVariable(name, value); err != nil {
				return false
			}

			scope := root
			for i := 0; i < depth; i++ {
				scope = NewScope(scope)
			}

			got, ok := scope.LookupVariable(name)
			return ok && got == value
		},
		gen.Identifier(),
		gen.Int64(),
		gen.IntRange(0, 20),
	))

	properties.Property("variables in a child scope are invisible to the parent", prop.ForAll(
		func(name string, value int64) bool {
			parent := NewScope(nil)
			child := NewScope(parent)
			_ = child.DeclareVariable(name, value)

			_, ok := parent.LookupVariable(name)
			return !ok
		},
		gen.Identifier(),
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestProperty_NoRedeclaration tests the one-declaration-per-scope rule.
// 同一スコープ内での再宣言の禁止
func TestProperty_NoRedeclaration(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("second declaration in the same scope fails and keeps the first value", prop.ForAll(
		func(name string, first, second int64) bool {
			s := NewScope(nil)
			if err := s.DeclareVariable(name, first); err != nil {
				return false
			}
			if err := s.DeclareVariable(name, second); !errors.Is(err, ErrAlreadyDeclared) {
				return false
			}
			got, _ := s.LookupVariable(name)
			return got == first
		},
		gen.Identifier(),
		gen.Int64(),
		gen.Int64(),
	))

	properties.Property("shadowing in a child scope leaves the parent binding intact", prop.ForAll(
		func(name string, outer, inner int64) bool {
			parent := NewScope(nil)
			_ = parent.DeclareVariable(name, outer)
			child := NewScope(parent)
			if err := child.DeclareVariable(name, inner); err != nil {
				return false
			}
			c, _ := child.LookupVariable(name)
			p, _ := parent.LookupVariable(name)
			return c == inner && p == outer
		},
		gen.Identifier(),
		gen.Int64(),
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// TestProperty_Assignment tests that assignment updates in place and never declares.
// 代入は既存の束縛のみを更新する
func TestProperty_Assignment(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("assignment from a descendant updates the owning scope", prop.ForAll(
		func(name string, before, after int64, depth int) bool {
			root := NewScope(nil)
			_ = root.DeclareVariable(name, before)
			scope := root
			for i := 0; i < depth; i++ {
				scope = NewScope(scope)
			}

			prev, ok := scope.AssignVariable(name, after)
			if !ok || prev != before {
				return false
			}
			got, _ := root.LookupVariable(name)
			return got == after && (depth == 0 || !scope.HasLocalVariable(name))
		},
		gen.Identifier(),
		gen.Int64(),
		gen.Int64(),
		gen.IntRange(0, 10),
	))

	properties.Property("assignment of an undeclared name fails", prop.ForAll(
		func(name string, value int64) bool {
			s := NewScope(NewScope(nil))
			_, ok := s.AssignVariable(name, value)
			if ok {
				return false
			}
			_, found := s.LookupVariable(name)
			return !found
		},
		gen.Identifier(),
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
