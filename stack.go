package hookline

import (
	"slices"
	"sync"
)

// Stack tracks the hooks being dispatched, outermost first, and for each hook the
// identities of the callbacks it is running.
//
// Callback pushes and pops always target the hook on top of the stack. With no hook
// on the stack they go to an "unknown" bucket.
type Stack struct {
	mu        sync.Mutex
	hooks     []HookName
	callbacks map[HookName][]string
}

// NewStack creates an empty stack.
func NewStack() *Stack {
	return &Stack{
		callbacks: make(map[HookName][]string),
	}
}

// PushHook marks name as executing.
func (s *Stack) PushHook(name HookName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, name)
}

// PopHook removes the innermost hook. It is a no-op on an empty stack.
func (s *Stack) PopHook() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.hooks) == 0 {
		return
	}
	s.hooks = s.hooks[:len(s.hooks)-1]
}

// CurrentHook returns the innermost executing hook.
func (s *Stack) CurrentHook() (HookName, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.hooks) == 0 {
		return "", false
	}
	return s.hooks[len(s.hooks)-1], true
}

// HookTraceback returns the executing hooks, outermost first.
func (s *Stack) HookTraceback() []HookName {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.hooks)
}

// Doing reports whether name is anywhere on the stack.
func (s *Stack) Doing(name HookName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.hooks, name)
}

// Depth returns the number of executing hooks.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hooks)
}

// PushCallback marks the callback identity as executing under the current hook.
func (s *Stack) PushCallback(identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	top := s.top()
	s.callbacks[top] = append(s.callbacks[top], identity)
}

// PopCallback removes the innermost callback of the current hook.
// It is a no-op when that hook has no callback executing.
func (s *Stack) PopCallback() {
	s.mu.Lock()
	defer s.mu.Unlock()

	top := s.top()
	ids := s.callbacks[top]
	switch len(ids) {
	case 0:
	case 1:
		delete(s.callbacks, top)
	default:
		s.callbacks[top] = ids[:len(ids)-1]
	}
}

// CurrentCallback returns the innermost callback of the current hook.
func (s *Stack) CurrentCallback() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.callbacks[s.top()]
	if len(ids) == 0 {
		return "", false
	}
	return ids[len(ids)-1], true
}

// CallbackTraceback returns the callbacks executing under the current hook, outermost first.
func (s *Stack) CallbackTraceback() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.callbacks[s.top()])
}

// AllCallbackTracebacks returns the executing callbacks of every hook.
func (s *Stack) AllCallbackTracebacks() map[HookName][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make(map[HookName][]string, len(s.callbacks))
	for name, ids := range s.callbacks {
		all[name] = slices.Clone(ids)
	}
	return all
}

// enterHook pushes name and returns the matching pop.
func (s *Stack) enterHook(name HookName) func() {
	s.PushHook(name)
	return s.PopHook
}

// enterCallback pushes identity and returns the matching pop.
func (s *Stack) enterCallback(identity string) func() {
	s.PushCallback(identity)
	return s.PopCallback
}

// top must be called while holding s.mu.
func (s *Stack) top() HookName {
	if len(s.hooks) == 0 {
		return unknownHook
	}
	return s.hooks[len(s.hooks)-1]
}
