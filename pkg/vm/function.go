package vm

import (
	"github.com/zurustar/tinyexp/pkg/compiler/ast"
)

// Function is a user-defined function bound to the scope it was defined in.
// It is immutable after creation.
type Function struct {
	Name   string
	Params []string
	Body   *ast.Block
	Line   int // line of the fun keyword

	closure *Scope
}

// NewFunction creates a Function from its definition and the scope active
// where the definition executed.
func NewFunction(def *ast.FunctionDefinition, closure *Scope) *Function {
	params := make([]string, len(def.Parameters))
	copy(params, def.Parameters)
	return &Function{
		Name:    def.Name,
		Params:  params,
		Body:    def.Body,
		Line:    def.Token.Line,
		closure: closure,
	}
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.Params)
}

// Closure returns the definition scope the function body runs under.
func (f *Function) Closure() *Scope {
	return f.closure
}

// invoke calls fn with already evaluated arguments.
// The arity check happens before any parameter is bound. Parameters live in
// a fresh scope whose parent is the definition scope, so the body sees the
// variables visible where fn was defined rather than those of the caller.
// A body that finishes without return yields 0.
func (vm *VM) invoke(fn *Function, args []int64, line int) (int64, error) {
	if len(args) != fn.Arity() {
		return 0, NewInvalidArgumentsNumberError(fn, len(args), line)
	}

	if err := vm.pushCall(fn.Name, line); err != nil {
		return 0, err
	}
	defer vm.popCall()

	paramScope := NewScope(fn.closure)
	for i, name := range fn.Params {
		// A repeated parameter name keeps the first argument bound to it.
		_ = paramScope.DeclareVariable(name, args[i])
	}

	vm.log.Debug("Function invoked", "function", fn.Name, "args", args, "depth", len(vm.callStack))

	saved := vm.scope
	vm.scope = paramScope
	defer func() { vm.scope = saved }()

	sig, err := vm.execBlock(fn.Body)
	if err != nil {
		return 0, err
	}
	if sig.Kind == SignalReturn {
		return sig.Value, nil
	}
	return 0, nil
}
