// Package vm provides the tree-walking execution engine for tinyexp programs.
// It implements:
// - Lexical scopes with separate variable and function namespaces
// - User-defined functions with static scoping
// - Statement execution and expression evaluation over the AST
// - The fixed operator table and the built-in function registry
package vm

import (
	"io"
	"log/slog"
	"os"

	"github.com/zurustar/tinyexp/pkg/compiler/ast"
	"github.com/zurustar/tinyexp/pkg/logger"
)

// DefaultMaxCallDepth is the maximum call depth used when no option overrides it.
const DefaultMaxCallDepth = 10000

// VM executes parsed programs.
// A VM is not safe for concurrent use; each Run starts from a fresh root scope,
// so sequential runs do not share state.
type VM struct {
	// Scope management
	scope     *Scope // current scope
	callStack []StackFrame

	// Built-in functions
	builtins map[string]BuiltinFunc

	// Configuration
	out          io.Writer
	maxCallDepth int

	// Logger
	log *slog.Logger
}

// StackFrame records one active user function call.
type StackFrame struct {
	FunctionName string
	CallLine     int
}

// BuiltinFunc is the signature for built-in functions.
// Built-in functions receive the VM instance and the evaluated arguments. They
// produce no value.
type BuiltinFunc func(vm *VM, args []int64) error

// Option is a functional option for configuring the VM.
type Option func(*VM)

// WithOutput sets the writer println prints to. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(vm *VM) {
		vm.out = w
	}
}

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(vm *VM) {
		vm.log = log
	}
}

// WithMaxCallDepth sets the maximum user function call depth.
// A value of 0 or less disables the limit.
func WithMaxCallDepth(depth int) Option {
	return func(vm *VM) {
		vm.maxCallDepth = depth
	}
}

// New creates a new VM instance with the given options.
// It registers the default built-in functions and applies configuration options.
func New(opts ...Option) *VM {
	vm := &VM{
		callStack:    make([]StackFrame, 0, 64),
		builtins:     make(map[string]BuiltinFunc),
		out:          os.Stdout,
		maxCallDepth: DefaultMaxCallDepth,
		log:          logger.GetLogger(),
	}

	// Apply options
	for _, opt := range opts {
		opt(vm)
	}

	vm.registerDefaultBuiltins()

	return vm
}

// Run executes a parsed program.
// Top-level statements run directly in a new root scope. Execution stops at the
// first error, which is returned as a *RuntimeError unless it came from the
// output writer. A return at top level ends the program without error.
func (vm *VM) Run(program *ast.Program) error {
	vm.scope = NewScope(nil)
	vm.callStack = vm.callStack[:0]
	defer func() { vm.scope = nil }()

	vm.log.Debug("Run started", "statements", len(program.Statements))

	for _, stmt := range program.Statements {
		sig, err := vm.execStatement(stmt)
		if err != nil {
			vm.log.Debug("Run aborted", "error", err)
			return err
		}
		if sig.Kind == SignalReturn {
			vm.log.Debug("Top-level return", "value", sig.Value)
			break
		}
	}

	vm.log.Debug("Run finished")
	return nil
}

// pushCall records a user function call and enforces the depth limit.
func (vm *VM) pushCall(name string, line int) error {
	if vm.maxCallDepth > 0 && len(vm.callStack) >= vm.maxCallDepth {
		vm.log.Error("Stack overflow", "function", name, "depth", len(vm.callStack)+1)
		return NewStackOverflowError(len(vm.callStack)+1, vm.maxCallDepth, line)
	}
	vm.callStack = append(vm.callStack, StackFrame{FunctionName: name, CallLine: line})
	return nil
}

func (vm *VM) popCall() {
	vm.callStack = vm.callStack[:len(vm.callStack)-1]
}

// GetStackDepth returns the current call stack depth.
func (vm *VM) GetStackDepth() int {
	return len(vm.callStack)
}

// GetCurrentScope returns the scope statements are currently executing in,
// or nil outside Run.
func (vm *VM) GetCurrentScope() *Scope {
	return vm.scope
}
