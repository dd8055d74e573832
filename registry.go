package hookline

import (
	"maps"
	"slices"
	"sync"
)

// Registry maps hook names to their callback lists.
// Lists are created on first Add and dropped once they become empty.
type Registry struct {
	mu    sync.RWMutex
	hooks map[HookName]*CallbackList
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make(map[HookName]*CallbackList),
	}
}

// Add attaches cb to the named hook.
func (r *Registry) Add(name HookName, cb Callback, priority, acceptedArgs int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, exists := r.hooks[name]
	if !exists {
		list = NewCallbackList()
		r.hooks[name] = list
	}
	list.Add(cb, priority, acceptedArgs)
}

// Remove detaches cb registered at exactly priority and reports whether it was found.
func (r *Registry) Remove(name HookName, cb Callback, priority int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, exists := r.hooks[name]
	if !exists {
		return false
	}
	removed := list.Remove(cb, priority)
	r.prune(name, list)
	return removed
}

// RemoveAll detaches every callback from the named hook.
func (r *Registry) RemoveAll(name HookName) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hooks, name)
}

// RemoveAt detaches every callback registered at priority on the named hook.
func (r *Registry) RemoveAt(name HookName, priority int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if list, exists := r.hooks[name]; exists {
		list.RemoveAt(priority)
		r.prune(name, list)
	}
}

// Has reports whether the named hook has any callback.
func (r *Registry) Has(name HookName) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, exists := r.hooks[name]
	return exists && list.Has()
}

// Priority returns the priority of cb on the named hook.
func (r *Registry) Priority(name HookName, cb Callback) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, exists := r.hooks[name]
	if !exists {
		return 0, false
	}
	return list.Priority(cb)
}

// HasAt reports whether cb is registered on the named hook at exactly priority.
func (r *Registry) HasAt(name HookName, cb Callback, priority int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, exists := r.hooks[name]
	return exists && list.HasAt(cb, priority)
}

// Len returns the number of callbacks on the named hook.
func (r *Registry) Len(name HookName) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if list, exists := r.hooks[name]; exists {
		return list.Len()
	}
	return 0
}

// Names returns the hooks that have callbacks, sorted.
func (r *Registry) Names() []HookName {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.hooks))
}

// Snapshot returns the callbacks of the named hook in dispatch order.
func (r *Registry) Snapshot(name HookName) []Registered {
	r.mu.Lock()
	defer r.mu.Unlock()

	if list, exists := r.hooks[name]; exists {
		return list.Snapshot()
	}
	return nil
}

// Dispatch runs the named hook's callbacks as an action.
// Each callback receives at most its accepted number of args.
func (r *Registry) Dispatch(name HookName, args ...any) error {
	return invoker{}.action(name, r.Snapshot(name), args, true)
}

// Filter runs the named hook's callbacks as a filter over value and returns the result.
// Without callbacks, value is returned unchanged.
func (r *Registry) Filter(name HookName, value any, args ...any) (any, error) {
	return invoker{}.filter(name, r.Snapshot(name), value, args)
}

func (r *Registry) counts() map[HookName]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[HookName]int, len(r.hooks))
	for name, list := range r.hooks {
		counts[name] = list.Len()
	}
	return counts
}

// prune drops an emptied list. Must be called while holding r.mu write lock.
func (r *Registry) prune(name HookName, list *CallbackList) {
	if !list.Has() {
		delete(r.hooks, name)
	}
}
