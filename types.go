// Package hookline provides a prioritized action/filter hook registry for Go.
//
// Callers attach callbacks to named hooks with a priority and an accepted-argument
// count. Dispatchers later run every callback for a hook in priority order, either as
// an action (return values discarded) or as a filter (each return value becomes the
// input of the next callback).
//
// A Hooks instance also keeps a stack of the hooks and callbacks currently executing,
// so callbacks can ask which hook is running them, and a count of how many times each
// hook was dispatched.
//
// Quick example:
//
//	h := hookline.New()
//
//	h.Add("title", hookline.Function("shout", func(args ...any) (any, error) {
//	    return strings.ToUpper(args[0].(string)), nil
//	}), hookline.AtPriority(5))
//
//	title, err := h.ApplyFilter("title", "hello")
//
// State is not meant to be shared across concurrent requests: create one Hooks per
// request or worker.
package hookline

import "reflect"

// HookName identifies a hook. Names compare by exact string match.
type HookName string

// AllHook is the hook whose callbacks run before every action and filter dispatch.
const AllHook HookName = "all"

// unknownHook is the callback-stack bucket used when no hook is executing.
const unknownHook HookName = "unknown"

const (
	// DefaultPriority is the priority used when none is given.
	DefaultPriority = 10

	// DefaultAcceptedArgs is the accepted-argument count used when none is given.
	DefaultAcceptedArgs = 1
)

// TypeHookName derives a hook name from a Go type, e.g. "orders.Created".
func TypeHookName[T any]() HookName {
	return HookName(typeName[T]())
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// Registered is a callback attached to a hook.
type Registered struct {
	// Callback is the unit of behaviour to invoke.
	Callback Callback

	// Priority orders callbacks; lower runs earlier.
	Priority int

	// AcceptedArgs is the maximum number of arguments delivered to the callback.
	AcceptedArgs int

	// Seq is the registration sequence number; it breaks priority ties.
	Seq uint64
}

// Stats provides a point-in-time view of a Hooks instance.
type Stats struct {
	// CallbackCounts maps each hook with callbacks to its number of callbacks.
	CallbackCounts map[HookName]int

	// Invocations maps each dispatched hook to its dispatch count.
	Invocations map[HookName]int

	// Traceback lists the hooks currently executing, outermost first.
	Traceback []HookName
}
