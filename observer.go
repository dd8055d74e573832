package hookline

import (
	"slices"
	"sync"
)

// Observer watches dispatches without being registered on any hook.
// It sees every action and filter dispatch, optionally limited to a set of hooks.
// Call Close() to detach it.
type Observer struct {
	hooks    *Hooks
	callback Callback
	names    map[HookName]struct{} // nil = all hooks, non-nil = whitelist
	active   bool
	mu       sync.Mutex
}

// Observe attaches fn to every dispatch. fn receives the dispatched hook name followed
// by the dispatch arguments (for filters, the value then the extra args). It runs with
// the hook on the stack, after the "all" hook and before the hook's own callbacks.
// If names are provided, only dispatches of those hooks reach fn.
func (h *Hooks) Observe(fn Func, names ...HookName) *Observer {
	o := &Observer{
		hooks:    h,
		callback: Closure(fn),
		active:   true,
	}

	if len(names) > 0 {
		o.names = make(map[HookName]struct{}, len(names))
		for _, name := range names {
			o.names[name] = struct{}{}
		}
	}

	h.observerMu.Lock()
	h.observers = append(h.observers, o)
	h.observerMu.Unlock()
	return o
}

// Active reports whether the observer is still attached.
func (o *Observer) Active() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// Close detaches the observer. Safe to call multiple times.
func (o *Observer) Close() {
	o.mu.Lock()
	if !o.active {
		o.mu.Unlock()
		return
	}
	o.active = false
	o.mu.Unlock()

	h := o.hooks
	h.observerMu.Lock()
	h.observers = slices.DeleteFunc(h.observers, func(other *Observer) bool { return other == o })
	h.observerMu.Unlock()
}

// wants reports whether a dispatch of name reaches the observer.
func (o *Observer) wants(name HookName) bool {
	if !o.Active() {
		return false
	}
	if o.names == nil {
		return true
	}
	_, ok := o.names[name]
	return ok
}
