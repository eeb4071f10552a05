// Package js exposes the flex layout engine to JavaScript using the goja
// engine (pure Go ES5.1+ implementation). Scripts build node trees,
// compute layouts, and read back positions, mirroring the engine's Go
// API.
package js

import (
	"fmt"
	"sync"

	"github.com/dop251/goja"

	"github.com/chrisuehlinger/flexkit/flex"
)

// Runtime wraps a goja JavaScript runtime with the layout bindings
// installed.
type Runtime struct {
	vm      *goja.Runtime
	engine  *flex.Engine
	console []string
	mu      sync.Mutex
	errors  []error
	onError func(error)
}

// NewRuntime creates a new JavaScript runtime with a dedicated layout
// engine.
func NewRuntime() *Runtime {
	r := &Runtime{
		vm:     goja.New(),
		engine: flex.NewEngine(),
		errors: make([]error, 0),
	}

	r.setupConsole()
	r.setupLayoutBindings()

	return r
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// ConsoleOutput returns the lines logged through console.log so far.
func (r *Runtime) ConsoleOutput() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.console))
	copy(out, r.console)
	return out
}

// Errors returns the accumulated script errors.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]error, len(r.errors))
	copy(out, r.errors)
	return out
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Recover from panics in the goja parser/runtime.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
			r.errors = append(r.errors, err)
			if r.onError != nil {
				r.onError(err)
			}
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.errors = append(r.errors, err)
		if r.onError != nil {
			r.onError(err)
		}
	}
	return result, err
}

func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()

	log := func(call goja.FunctionCall) goja.Value {
		parts := make([]any, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		r.console = append(r.console, fmt.Sprintln(parts...))
		return goja.Undefined()
	}

	console.Set("log", log)
	console.Set("info", log)
	console.Set("warn", log)
	console.Set("error", log)
	r.vm.Set("console", console)
}
