// Package script exposes the bubbling events of a view document to
// JavaScript through goja, so editing behaviors can be written as scripts.
//
// The runtime gets a global "editing" object:
//
//	editing.on(name, fn, {phase: "capturing", priority: "low", context: "p"})
//	editing.fire(name, data)
//	editing.log(...)
//
// Contexts are element names, "$root" or "$text". Listener callbacks get an
// info object with name, phase, target and stop().
package script

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/viewtree/view"
)

// Binder binds a document's bubbling emitter to a goja runtime.
type Binder struct {
	vm        *goja.Runtime
	doc       *view.Document
	logger    *zap.Logger
	listeners []*view.BubblingListener
	errors    []error
}

// Option configures a Binder.
type Option func(*Binder)

// WithLogger sets the logger used by editing.log and for script errors.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Binder) {
		b.logger = logger
	}
}

// NewBinder creates a runtime bound to doc.
func NewBinder(doc *view.Document, opts ...Option) *Binder {
	b := &Binder{vm: goja.New(), doc: doc}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	b.logger = b.logger.Named("script")
	b.setupEditing()
	return b
}

// VM returns the underlying goja runtime.
func (b *Binder) VM() *goja.Runtime {
	return b.vm
}

// Execute runs JavaScript code and returns the result.
func (b *Binder) Execute(code string) (result goja.Value, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("script execution panic: %v", p)
		}
	}()
	return b.vm.RunString(code)
}

// Errors returns the errors thrown by script listeners.
func (b *Binder) Errors() []error {
	return append([]error{}, b.errors...)
}

// Close unregisters every listener added by scripts.
func (b *Binder) Close() {
	for _, l := range b.listeners {
		l.Off()
	}
	b.listeners = nil
}

func (b *Binder) setupEditing() {
	editing := b.vm.NewObject()

	editing.Set("on", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 2 {
			panic(b.vm.NewTypeError("editing.on needs an event name and a callback"))
		}
		name := call.Arguments[0].String()
		callback, ok := goja.AssertFunction(call.Arguments[1])
		if !ok {
			panic(b.vm.NewTypeError("editing.on callback is not a function"))
		}

		opts, err := b.listenOptions(call.Argument(2))
		if err != nil {
			panic(b.vm.NewTypeError(err.Error()))
		}

		l := b.doc.Bubbling().On(name, func(info *view.BubblingEventInfo, data any) {
			b.invoke(callback, info, data)
		}, opts)
		b.listeners = append(b.listeners, l)

		handle := b.vm.NewObject()
		handle.Set("off", func(goja.FunctionCall) goja.Value {
			l.Off()
			return goja.Undefined()
		})
		return handle
	})

	editing.Set("fire", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(b.vm.NewTypeError("editing.fire needs an event name"))
		}
		var data any
		if arg := call.Argument(1); !goja.IsUndefined(arg) {
			data = arg.Export()
		}
		info := b.doc.Bubbling().Fire(call.Arguments[0].String(), data)
		if info.Return == nil {
			return goja.Undefined()
		}
		return b.vm.ToValue(info.Return)
	})

	editing.Set("log", func(call goja.FunctionCall) goja.Value {
		b.logger.Info(formatArgs(call.Arguments))
		return goja.Undefined()
	})

	b.vm.Set("editing", editing)
}

func (b *Binder) invoke(callback goja.Callable, info *view.BubblingEventInfo, data any) {
	obj := b.vm.NewObject()
	obj.Set("name", info.Name())
	obj.Set("phase", info.EventPhase().String())
	if target := info.CurrentTarget(); target != nil {
		obj.Set("target", describe(target))
	}
	obj.Set("stop", func(goja.FunctionCall) goja.Value {
		info.Stop()
		return goja.Undefined()
	})
	obj.Set("setReturn", func(call goja.FunctionCall) goja.Value {
		info.Return = call.Argument(0).Export()
		return goja.Undefined()
	})

	if _, err := callback(goja.Undefined(), obj, b.vm.ToValue(data)); err != nil {
		b.errors = append(b.errors, err)
		b.logger.Error("listener failed", zap.String("event", info.Name()), zap.Error(err))
	}
}

func (b *Binder) listenOptions(arg goja.Value) (view.ListenOptions, error) {
	opts := view.ListenOptions{Priority: view.PriorityNormal}
	if goja.IsUndefined(arg) || goja.IsNull(arg) {
		return opts, nil
	}
	obj := arg.ToObject(b.vm)

	if v := obj.Get("phase"); v != nil && !goja.IsUndefined(v) {
		phase, err := parsePhase(v.String())
		if err != nil {
			return opts, err
		}
		opts.Phase = phase
	}
	if v := obj.Get("priority"); v != nil && !goja.IsUndefined(v) {
		priority, err := parsePriority(v)
		if err != nil {
			return opts, err
		}
		opts.Priority = priority
	}
	if v := obj.Get("context"); v != nil && !goja.IsUndefined(v) {
		opts.Context = parseContext(v.String())
	}
	return opts, nil
}

func parsePhase(s string) (view.EventPhase, error) {
	switch s {
	case "capturing":
		return view.EventPhaseCapturing, nil
	case "atTarget", "":
		return view.EventPhaseAtTarget, nil
	case "bubbling":
		return view.EventPhaseBubbling, nil
	default:
		return 0, fmt.Errorf("unknown phase %q", s)
	}
}

func parsePriority(v goja.Value) (view.Priority, error) {
	if n, ok := v.Export().(int64); ok {
		return view.Priority(n), nil
	}
	switch v.String() {
	case "highest":
		return view.PriorityHighest, nil
	case "high":
		return view.PriorityHigh, nil
	case "normal":
		return view.PriorityNormal, nil
	case "low":
		return view.PriorityLow, nil
	case "lowest":
		return view.PriorityLowest, nil
	default:
		return 0, fmt.Errorf("unknown priority %q", v.String())
	}
}

func parseContext(s string) view.Context {
	switch s {
	case "$root":
		return view.ContextRoot()
	case "$text":
		return view.ContextText()
	default:
		return view.ContextName(s)
	}
}

// describe builds the script view of a node.
func describe(node *view.Node) map[string]any {
	desc := map[string]any{"kind": node.Kind().String()}
	if element := node.AsElement(); element != nil {
		desc["name"] = element.Name()
	}
	if text := node.AsText(); text != nil {
		desc["data"] = text.Data()
	}
	return desc
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
