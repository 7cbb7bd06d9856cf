package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// registerDefaultBuiltins registers the default built-in functions.
func (vm *VM) registerDefaultBuiltins() {
	// println: print arguments separated by a space, followed by a newline
	vm.RegisterBuiltinFunction("println", func(v *VM, args []int64) error {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = strconv.FormatInt(arg, 10)
		}
		if _, err := fmt.Fprintln(v.out, strings.Join(parts, " ")); err != nil {
			return fmt.Errorf("println: %w", err)
		}
		return nil
	})
}

// RegisterBuiltinFunction registers a built-in function with the given name.
// Registering an existing name replaces it. Guest programs cannot change the registry.
func (vm *VM) RegisterBuiltinFunction(name string, fn BuiltinFunc) {
	vm.builtins[name] = fn
}

// HasBuiltin reports whether a built-in function with the given name is registered.
func (vm *VM) HasBuiltin(name string) bool {
	_, ok := vm.builtins[name]
	return ok
}
