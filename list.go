package hookline

import (
	"cmp"
	"iter"
	"slices"
)

// CallbackList holds the callbacks of one hook, ordered by ascending priority and,
// within a priority, by registration order.
//
// Sorting is deferred until the order is next observed. CallbackList is not safe for
// concurrent use; Registry guards its lists.
type CallbackList struct {
	entries []Registered
	seq     uint64
	dirty   bool
}

// NewCallbackList creates an empty list.
func NewCallbackList() *CallbackList {
	return &CallbackList{}
}

// Add appends cb at the given priority. An acceptedArgs below 1 is treated as 1.
func (l *CallbackList) Add(cb Callback, priority, acceptedArgs int) {
	if acceptedArgs < 1 {
		acceptedArgs = 1
	}
	l.seq++
	l.entries = append(l.entries, Registered{
		Callback:     cb,
		Priority:     priority,
		AcceptedArgs: acceptedArgs,
		Seq:          l.seq,
	})
	l.dirty = true
}

// Remove deletes the first entry matching cb's identity at exactly priority.
// It reports whether an entry was removed.
func (l *CallbackList) Remove(cb Callback, priority int) bool {
	l.Sort()

	i := l.index(cb, func(r Registered) bool { return r.Priority == priority })
	if i < 0 {
		return false
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return true
}

// RemoveAll clears the list.
func (l *CallbackList) RemoveAll() {
	l.entries = nil
	l.dirty = false
}

// RemoveAt deletes every entry registered at priority.
func (l *CallbackList) RemoveAt(priority int) {
	l.entries = slices.DeleteFunc(l.entries, func(r Registered) bool {
		return r.Priority == priority
	})
}

// Has reports whether the list holds any callback.
func (l *CallbackList) Has() bool {
	return len(l.entries) > 0
}

// Priority returns the priority of the first entry matching cb.
// Priority 0 is valid, so check ok rather than the value.
func (l *CallbackList) Priority(cb Callback) (priority int, ok bool) {
	l.Sort()

	i := l.index(cb, func(Registered) bool { return true })
	if i < 0 {
		return 0, false
	}
	return l.entries[i].Priority, true
}

// HasAt reports whether cb is registered at exactly priority.
func (l *CallbackList) HasAt(cb Callback, priority int) bool {
	return l.index(cb, func(r Registered) bool { return r.Priority == priority }) >= 0
}

// Len returns the number of callbacks in the list.
func (l *CallbackList) Len() int {
	return len(l.entries)
}

// Sort restores priority order. It is stable and idempotent.
func (l *CallbackList) Sort() {
	if !l.dirty {
		return
	}
	slices.SortStableFunc(l.entries, func(a, b Registered) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	l.dirty = false
}

// All yields the callbacks in dispatch order. The sequence can be ranged over
// repeatedly; each pass observes the list as it is at that moment.
func (l *CallbackList) All() iter.Seq[Registered] {
	return func(yield func(Registered) bool) {
		l.Sort()
		for _, r := range l.entries {
			if !yield(r) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the callbacks in dispatch order.
// Dispatch iterates a snapshot so callbacks may change the list while it runs.
func (l *CallbackList) Snapshot() []Registered {
	l.Sort()
	return slices.Clone(l.entries)
}

// index finds the first entry whose identity matches cb and which satisfies match.
// Callbacks without a resolvable identity never match.
func (l *CallbackList) index(cb Callback, match func(Registered) bool) int {
	if cb == nil {
		return -1
	}
	want, err := cb.Identity()
	if err != nil {
		return -1
	}
	for i, r := range l.entries {
		if !match(r) {
			continue
		}
		if id, err := r.Callback.Identity(); err == nil && id == want {
			return i
		}
	}
	return -1
}
