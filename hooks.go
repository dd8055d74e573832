package hookline

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"sync"

	"github.com/ternarybob/arbor"
)

// Hooks is a hook registry together with the execution stack and dispatch counters
// of one request or worker.
type Hooks struct {
	registry      *Registry
	stack         *Stack
	counters      *Counters
	sink          NoticeSink
	logger        arbor.ILogger
	recoverPanics bool

	observerMu sync.Mutex
	observers  []*Observer
}

// New creates a Hooks instance with optional configuration.
// If no options are provided, each component is created empty and deprecation
// notices are logged as warnings to the console.
func New(opts ...Option) *Hooks {
	h := &Hooks{}
	for _, opt := range opts {
		opt(h)
	}

	if h.registry == nil {
		h.registry = NewRegistry()
	}
	if h.stack == nil {
		h.stack = NewStack()
	}
	if h.counters == nil {
		h.counters = NewCounters()
	}
	if h.logger == nil {
		h.logger = NewLogger(DefaultConfig().Logging)
	}
	if h.sink == nil {
		h.sink = NewLogSink(h.logger)
	}
	return h
}

// AddOption configures a single registration.
type AddOption func(*addOptions)

type addOptions struct {
	priority     int
	acceptedArgs int
}

// AtPriority sets the registration priority. Lower priorities run earlier.
func AtPriority(priority int) AddOption {
	return func(o *addOptions) {
		o.priority = priority
	}
}

// Accepting sets how many dispatch arguments the callback receives.
// Values below 1 are treated as 1.
func Accepting(n int) AddOption {
	return func(o *addOptions) {
		o.acceptedArgs = n
	}
}

// Add attaches cb to the named hook. The callback is not validated until it is
// first identified or invoked.
func (h *Hooks) Add(name HookName, cb Callback, opts ...AddOption) {
	o := addOptions{priority: DefaultPriority, acceptedArgs: DefaultAcceptedArgs}
	for _, opt := range opts {
		opt(&o)
	}

	h.registry.Add(name, cb, o.priority, o.acceptedArgs)

	h.logger.Debug().
		Str("hook", string(name)).
		Str("priority", strconv.Itoa(o.priority)).
		Str("accepted_args", strconv.Itoa(o.acceptedArgs)).
		Msg("Callback added")
}

// Remove detaches cb registered at exactly priority and reports whether it was found.
func (h *Hooks) Remove(name HookName, cb Callback, priority int) bool {
	removed := h.registry.Remove(name, cb, priority)
	if removed {
		h.logger.Debug().
			Str("hook", string(name)).
			Str("priority", strconv.Itoa(priority)).
			Msg("Callback removed")
	}
	return removed
}

// RemoveAll detaches every callback from the named hook.
func (h *Hooks) RemoveAll(name HookName) {
	h.registry.RemoveAll(name)
	h.logger.Debug().Str("hook", string(name)).Msg("All callbacks removed")
}

// RemoveAllAt detaches every callback registered at priority on the named hook.
func (h *Hooks) RemoveAllAt(name HookName, priority int) {
	h.registry.RemoveAt(name, priority)
	h.logger.Debug().
		Str("hook", string(name)).
		Str("priority", strconv.Itoa(priority)).
		Msg("Callbacks removed at priority")
}

// Has reports whether the named hook has any callback.
func (h *Hooks) Has(name HookName) bool {
	return h.registry.Has(name)
}

// Priority returns the priority at which cb is attached to the named hook.
func (h *Hooks) Priority(name HookName, cb Callback) (int, bool) {
	return h.registry.Priority(name, cb)
}

// HasAt reports whether cb is attached to the named hook at exactly priority.
func (h *Hooks) HasAt(name HookName, cb Callback, priority int) bool {
	return h.registry.HasAt(name, cb, priority)
}

// DoAction runs the named hook's callbacks for their side effects.
//
// The "all" hook's callbacks run first with the same args, then observers, then the
// hook's own callbacks. The first callback error stops the dispatch and is returned unchanged.
func (h *Hooks) DoAction(name HookName, args ...any) error {
	h.counters.Increment(name)

	if err := h.runAll(name, args); err != nil {
		return err
	}
	return h.runAction(name, args)
}

// DoActionArgs is DoAction with the arguments supplied as a slice.
func (h *Hooks) DoActionArgs(name HookName, args []any) error {
	return h.DoAction(name, args...)
}

// ApplyFilter threads value through the named hook's callbacks and returns the result.
// Without callbacks, value is returned unchanged.
func (h *Hooks) ApplyFilter(name HookName, value any, args ...any) (any, error) {
	h.counters.Increment(name)

	allArgs := make([]any, 0, 1+len(args))
	allArgs = append(allArgs, value)
	allArgs = append(allArgs, args...)
	if err := h.runAll(name, allArgs); err != nil {
		return nil, err
	}

	release := h.stack.enterHook(name)
	defer release()

	if err := h.notifyObservers(name, allArgs); err != nil {
		return nil, err
	}
	return h.invoker().filter(name, h.registry.Snapshot(name), value, args)
}

// ApplyFilterArgs is ApplyFilter with the value as the first element of args.
// An empty args filters a nil value.
func (h *Hooks) ApplyFilterArgs(name HookName, args []any) (any, error) {
	if len(args) == 0 {
		return h.ApplyFilter(name, nil)
	}
	return h.ApplyFilter(name, args[0], args[1:]...)
}

// DoActionDeprecated runs a deprecated action hook. When callbacks are attached, a
// deprecation notice is sent before they run; otherwise nothing happens at all.
func (h *Hooks) DoActionDeprecated(name HookName, args []any, version, replacement, message string) error {
	if !h.deprecations().called(name, version, replacement, message) {
		return nil
	}
	return h.DoActionArgs(name, args)
}

// ApplyFilterDeprecated runs a deprecated filter hook. When callbacks are attached, a
// deprecation notice is sent before they run; otherwise the first arg is returned as is.
func (h *Hooks) ApplyFilterDeprecated(name HookName, args []any, version, replacement, message string) (any, error) {
	if !h.deprecations().called(name, version, replacement, message) {
		if len(args) == 0 {
			return nil, nil
		}
		return args[0], nil
	}
	return h.ApplyFilterArgs(name, args)
}

// CurrentHook returns the innermost hook being dispatched.
func (h *Hooks) CurrentHook() (HookName, bool) {
	return h.stack.CurrentHook()
}

// CurrentCallback returns the identity of the innermost callback of the current hook.
func (h *Hooks) CurrentCallback() (string, bool) {
	return h.stack.CurrentCallback()
}

// Executing reports whether any hook is being dispatched.
func (h *Hooks) Executing() bool {
	return h.stack.Depth() > 0
}

// IsExecuting reports whether the named hook is being dispatched, at any nesting level.
func (h *Hooks) IsExecuting(name HookName) bool {
	return h.stack.Doing(name)
}

// HookTraceback returns the hooks being dispatched, outermost first.
func (h *Hooks) HookTraceback() []HookName {
	return h.stack.HookTraceback()
}

// Count returns how many times the named hook was dispatched.
func (h *Hooks) Count(name HookName) int {
	return h.counters.Get(name)
}

// Registry returns the underlying registry.
func (h *Hooks) Registry() *Registry { return h.registry }

// Stack returns the underlying execution stack.
func (h *Hooks) Stack() *Stack { return h.stack }

// Counters returns the underlying dispatch counters.
func (h *Hooks) Counters() *Counters { return h.counters }

// Stats returns a point-in-time view of registrations, counts and the hook stack.
func (h *Hooks) Stats() Stats {
	return Stats{
		CallbackCounts: h.registry.counts(),
		Invocations:    h.counters.Snapshot(),
		Traceback:      h.stack.HookTraceback(),
	}
}

// Filter is ApplyFilter for a value of a known type.
// A result that is not a T yields ErrFilterType.
func Filter[T any](h *Hooks, name HookName, value T, args ...any) (T, error) {
	var zero T

	out, err := h.ApplyFilter(name, value, args...)
	if err != nil {
		return zero, err
	}
	if out == nil && nillable[T]() {
		return zero, nil
	}
	typed, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("%w: hook %q returned %T, want %s", ErrFilterType, name, out, typeName[T]())
	}
	return typed, nil
}

func nillable[T any]() bool {
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// runAction dispatches name with the hook pushed on the stack for the duration.
func (h *Hooks) runAction(name HookName, args []any) error {
	release := h.stack.enterHook(name)
	defer release()

	if err := h.notifyObservers(name, args); err != nil {
		return err
	}
	return h.invoker().action(name, h.registry.Snapshot(name), args, true)
}

// runAll fans a dispatch of name out to the "all" hook, which is itself counted and
// stacked as an ordinary action. Its callbacks receive the dispatch arguments unchanged
// and are not limited by their accepted count.
func (h *Hooks) runAll(name HookName, args []any) error {
	if name == AllHook || !h.registry.Has(AllHook) {
		return nil
	}
	h.counters.Increment(AllHook)

	release := h.stack.enterHook(AllHook)
	defer release()

	return h.invoker().action(AllHook, h.registry.Snapshot(AllHook), args, false)
}

// notifyObservers calls the observers interested in name with name followed by args.
// It runs with name already pushed on the stack.
func (h *Hooks) notifyObservers(name HookName, args []any) error {
	h.observerMu.Lock()
	observers := slices.Clone(h.observers)
	h.observerMu.Unlock()

	if len(observers) == 0 {
		return nil
	}

	obsArgs := make([]any, 0, 1+len(args))
	obsArgs = append(obsArgs, name)
	obsArgs = append(obsArgs, args...)

	in := h.invoker()
	for _, o := range observers {
		if !o.wants(name) {
			continue
		}
		r := Registered{Callback: o.callback, Priority: DefaultPriority, AcceptedArgs: len(obsArgs)}
		if _, err := in.call(name, r, obsArgs); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hooks) invoker() invoker {
	return invoker{stack: h.stack, recover: h.recoverPanics}
}

func (h *Hooks) deprecations() deprecations {
	return deprecations{registry: h.registry, sink: h.sink}
}
