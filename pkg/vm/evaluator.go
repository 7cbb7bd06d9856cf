package vm

import (
	"errors"
	"strconv"

	"github.com/zurustar/tinyexp/pkg/compiler/ast"
)

// SignalKind tells whether a statement completed normally or executed a return.
type SignalKind int

const (
	SignalNormal SignalKind = iota
	SignalReturn
)

// Signal is the control-flow outcome of executing a statement.
// A SignalReturn propagates out of every enclosing block and loop until the
// function invocation (or the top level) consumes it.
type Signal struct {
	Kind  SignalKind
	Value int64
}

var normal = Signal{Kind: SignalNormal}

// execBlock runs the statements of a block in one new child scope.
// The previous scope is restored on every exit path.
func (vm *VM) execBlock(block *ast.Block) (Signal, error) {
	saved := vm.scope
	vm.scope = NewScope(saved)
	defer func() { vm.scope = saved }()

	for _, stmt := range block.Statements {
		sig, err := vm.execStatement(stmt)
		if err != nil {
			return normal, err
		}
		if sig.Kind == SignalReturn {
			return sig, nil
		}
	}
	return normal, nil
}

// execStatement executes one statement in the current scope.
func (vm *VM) execStatement(stmt ast.Statement) (Signal, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return vm.execBlock(s)

	case *ast.VariableDeclaration:
		return normal, vm.execVariableDeclaration(s)

	case *ast.Assignment:
		return normal, vm.execAssignment(s)

	case *ast.FunctionDefinition:
		return normal, vm.execFunctionDefinition(s)

	case *ast.IfStatement:
		return vm.execIf(s)

	case *ast.WhileStatement:
		return vm.execWhile(s)

	case *ast.ReturnStatement:
		value, err := vm.evalExpression(s.Value)
		if err != nil {
			return normal, err
		}
		return Signal{Kind: SignalReturn, Value: value}, nil

	case *ast.ExpressionStatement:
		// The value, if any, is discarded. A built-in call is allowed here.
		if call, ok := s.Expression.(*ast.FunctionCall); ok {
			_, _, err := vm.evalCall(call)
			return normal, err
		}
		_, err := vm.evalExpression(s.Expression)
		return normal, err

	default:
		return normal, NewRuntimeError(ErrorUnknownOperation, "unsupported statement: "+stmt.String())
	}
}

func (vm *VM) execVariableDeclaration(s *ast.VariableDeclaration) error {
	var value int64
	if s.Value != nil {
		v, err := vm.evalExpression(s.Value)
		if err != nil {
			return err
		}
		value = v
	}

	if err := vm.scope.DeclareVariable(s.Name, value); err != nil {
		return NewVariableMultipleDeclarationError(s.Name, s.Token.Line)
	}
	vm.log.Debug("Variable declared", "name", s.Name, "value", value, "line", s.Token.Line)
	return nil
}

func (vm *VM) execAssignment(s *ast.Assignment) error {
	value, err := vm.evalExpression(s.Value)
	if err != nil {
		return err
	}

	prev, ok := vm.scope.AssignVariable(s.Name, value)
	if !ok {
		return NewUnknownVariableError(s.Name, s.Token.Line)
	}
	vm.log.Debug("Variable assigned", "name", s.Name, "old", prev, "new", value)
	return nil
}

// execFunctionDefinition binds the function in the current scope without running its body.
func (vm *VM) execFunctionDefinition(s *ast.FunctionDefinition) error {
	fn := NewFunction(s, vm.scope)
	if err := vm.scope.DeclareFunction(s.Name, fn); err != nil {
		return NewFunctionMultipleDeclarationError(s.Name, s.Token.Line)
	}
	vm.log.Debug("Function declared", "name", s.Name, "arity", fn.Arity(), "line", fn.Line)
	return nil
}

func (vm *VM) execIf(s *ast.IfStatement) (Signal, error) {
	cond, err := vm.evalExpression(s.Condition)
	if err != nil {
		return normal, err
	}

	if cond != 0 {
		return vm.execBlock(s.Consequence)
	}
	if s.Alternative != nil {
		return vm.execBlock(s.Alternative)
	}
	return normal, nil
}

// execWhile re-evaluates the condition before each iteration.
// A return inside the body ends the loop and keeps propagating.
func (vm *VM) execWhile(s *ast.WhileStatement) (Signal, error) {
	for {
		cond, err := vm.evalExpression(s.Condition)
		if err != nil {
			return normal, err
		}
		if cond == 0 {
			return normal, nil
		}

		sig, err := vm.execBlock(s.Body)
		if err != nil {
			return normal, err
		}
		if sig.Kind == SignalReturn {
			return sig, nil
		}
	}
}

// evalExpression evaluates an expression to an integer in the current scope.
func (vm *VM) evalExpression(expr ast.Expression) (int64, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		value, err := strconv.ParseInt(e.Text, 10, 64)
		if err != nil {
			return 0, NewLiteralNotANumberError(e.Text, e.Token.Line)
		}
		return value, nil

	case *ast.Identifier:
		value, ok := vm.scope.LookupVariable(e.Value)
		if !ok {
			return 0, NewUnknownVariableError(e.Value, e.Token.Line)
		}
		return value, nil

	case *ast.BinaryExpression:
		return vm.evalBinary(e)

	case *ast.FunctionCall:
		value, ok, err := vm.evalCall(e)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, NewVoidValueError(e.Name, e.Token.Line)
		}
		return value, nil

	default:
		return 0, NewRuntimeError(ErrorUnknownOperation, "unsupported expression: "+expr.String())
	}
}

// evalBinary evaluates both operands left to right, then applies the operator.
func (vm *VM) evalBinary(e *ast.BinaryExpression) (int64, error) {
	left, err := vm.evalExpression(e.Left)
	if err != nil {
		return 0, err
	}
	right, err := vm.evalExpression(e.Right)
	if err != nil {
		return 0, err
	}

	op, ok := Operators[e.Operator]
	if !ok {
		return 0, NewUnknownOperationError(e.Operator, e.Token.Line)
	}
	result, err := op(left, right)
	if errors.Is(err, ErrDivisionByZero) {
		return 0, NewDivisionByZeroError(e.Operator, e.Token.Line)
	}
	if err != nil {
		return 0, err
	}
	return result, nil
}

// evalCall resolves and calls a function.
// The name is resolved before any argument is evaluated: user functions
// reachable from the current scope first, then built-ins. Arguments are
// evaluated left to right in the caller's scope.
//
// Returns:
//   - int64: The call result
//   - bool: false when a built-in was called and there is no result
//   - error: Any error raised by resolution, arguments or the call itself
func (vm *VM) evalCall(call *ast.FunctionCall) (int64, bool, error) {
	line := call.Token.Line

	fn, isUser := vm.scope.LookupFunction(call.Name)
	builtin, isBuiltin := vm.builtins[call.Name]
	if !isUser && !isBuiltin {
		return 0, false, NewUnknownFunctionError(call.Name, line)
	}

	args := make([]int64, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		arg, err := vm.evalExpression(argExpr)
		if err != nil {
			return 0, false, err
		}
		args = append(args, arg)
	}

	if isUser {
		value, err := vm.invoke(fn, args, line)
		if err != nil {
			return 0, false, err
		}
		return value, true, nil
	}

	vm.log.Debug("Built-in called", "function", call.Name, "args", args)
	if err := builtin(vm, args); err != nil {
		return 0, false, err
	}
	return 0, false, nil
}
