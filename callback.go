package hookline

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Func is the native shape of a hook callback.
// Actions ignore the returned value; filters pass it to the next callback.
type Func func(args ...any) (any, error)

// Invoke implements Invoker.
func (f Func) Invoke(args ...any) (any, error) { return f(args...) }

// Callback is a unit of behaviour attached to a hook.
//
// Identity returns the string used to match a callback for removal and lookup.
// Both methods report ErrInvalidCallback when the underlying value cannot be called.
type Callback interface {
	Identity() (string, error)
	Invoke(args ...any) (any, error)
}

// Invoker is an object that can be invoked directly as a callback.
type Invoker interface {
	Invoke(args ...any) (any, error)
}

// Identifier lets a receiver supply its own object identity for Method callbacks.
type Identifier interface {
	HookIdentity() string
}

// Function wraps a named free function. Its identity is the name itself.
func Function(name string, fn Func) Callback {
	return &functionCallback{name: name, fn: fn}
}

type functionCallback struct {
	name string
	fn   Func
}

func (c *functionCallback) Identity() (string, error) {
	if c.fn == nil {
		return "", fmt.Errorf("%w: function %q is nil", ErrInvalidCallback, c.name)
	}
	return c.name, nil
}

func (c *functionCallback) Invoke(args ...any) (any, error) {
	if c.fn == nil {
		return nil, fmt.Errorf("%w: function %q is nil", ErrInvalidCallback, c.name)
	}
	return c.fn(args...)
}

// FuncTable resolves free functions by name at call time.
// Callbacks created with Ref may be registered before the function is defined.
type FuncTable struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewFuncTable creates an empty function table.
func NewFuncTable() *FuncTable {
	return &FuncTable{funcs: make(map[string]Func)}
}

// Define binds name to fn, replacing any previous definition.
func (t *FuncTable) Define(name string, fn Func) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.funcs[name] = fn
}

// Lookup returns the function bound to name.
func (t *FuncTable) Lookup(name string) (Func, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.funcs[name]
	return fn, ok && fn != nil
}

// Names returns the defined function names in sorted order.
func (t *FuncTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.funcs))
	for name := range t.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ref returns a callback that calls the function named name in the table.
func (t *FuncTable) Ref(name string) Callback {
	return &tableCallback{table: t, name: name}
}

type tableCallback struct {
	table *FuncTable
	name  string
}

func (c *tableCallback) resolve() (Func, error) {
	fn, ok := c.table.Lookup(c.name)
	if !ok {
		return nil, fmt.Errorf("%w: function %q is not defined", ErrInvalidCallback, c.name)
	}
	return fn, nil
}

func (c *tableCallback) Identity() (string, error) {
	if _, err := c.resolve(); err != nil {
		return "", err
	}
	return c.name, nil
}

func (c *tableCallback) Invoke(args ...any) (any, error) {
	fn, err := c.resolve()
	if err != nil {
		return nil, err
	}
	return fn(args...)
}

// Method wraps a method bound to an instance.
// Its identity is "<object-identity>::<method>", where the object identity comes from
// Identifier when the receiver implements it and from the receiver's address otherwise.
// Receivers that are neither pointers nor Identifiers have no stable identity and are invalid.
func Method(receiver any, method string, fn Func) Callback {
	return &methodCallback{receiver: receiver, method: method, fn: fn}
}

type methodCallback struct {
	receiver any
	method   string
	fn       Func
}

func (c *methodCallback) Identity() (string, error) {
	if c.fn == nil {
		return "", fmt.Errorf("%w: method %q is nil", ErrInvalidCallback, c.method)
	}
	id, err := objectIdentity(c.receiver)
	if err != nil {
		return "", err
	}
	return id + "::" + c.method, nil
}

func (c *methodCallback) Invoke(args ...any) (any, error) {
	if c.fn == nil {
		return nil, fmt.Errorf("%w: method %q is nil", ErrInvalidCallback, c.method)
	}
	return c.fn(args...)
}

// StaticMethod wraps a method bound to a type rather than an instance.
// Its identity is "<typeName>::<method>".
func StaticMethod(typeName, method string, fn Func) Callback {
	return &staticCallback{typeName: typeName, method: method, fn: fn}
}

// StaticMethodOf is StaticMethod with the type name taken from T.
func StaticMethodOf[T any](method string, fn Func) Callback {
	return StaticMethod(typeName[T](), method, fn)
}

type staticCallback struct {
	typeName string
	method   string
	fn       Func
}

func (c *staticCallback) Identity() (string, error) {
	if c.fn == nil || c.typeName == "" {
		return "", fmt.Errorf("%w: static method %s::%s", ErrInvalidCallback, c.typeName, c.method)
	}
	return c.typeName + "::" + c.method, nil
}

func (c *staticCallback) Invoke(args ...any) (any, error) {
	if c.fn == nil {
		return nil, fmt.Errorf("%w: static method %s::%s", ErrInvalidCallback, c.typeName, c.method)
	}
	return c.fn(args...)
}

// Closure wraps an anonymous function. Its identity is a token unique to this
// Callback value, so keep the returned Callback to remove it later.
func Closure(fn Func) Callback {
	return &closureCallback{token: newToken(), fn: fn}
}

type closureCallback struct {
	token string
	fn    Func
}

func (c *closureCallback) Identity() (string, error) {
	if c.fn == nil {
		return "", fmt.Errorf("%w: closure is nil", ErrInvalidCallback)
	}
	return c.token, nil
}

func (c *closureCallback) Invoke(args ...any) (any, error) {
	if c.fn == nil {
		return nil, fmt.Errorf("%w: closure is nil", ErrInvalidCallback)
	}
	return c.fn(args...)
}

// Invokable wraps an object that is itself callable.
// Its identity is "<object-identity>::__invoke". Pointer objects share an identity
// across wrappers; other values get a token unique to the returned Callback.
func Invokable(obj Invoker) Callback {
	token := newToken()
	if id, err := objectIdentity(obj); err == nil {
		token = id
	}
	return &invokableCallback{token: token, obj: obj}
}

type invokableCallback struct {
	token string
	obj   Invoker
}

func (c *invokableCallback) valid() bool {
	if c.obj == nil {
		return false
	}
	if f, ok := c.obj.(Func); ok && f == nil {
		return false
	}
	rv := reflect.ValueOf(c.obj)
	return rv.Kind() != reflect.Pointer || !rv.IsNil()
}

func (c *invokableCallback) Identity() (string, error) {
	if !c.valid() {
		return "", fmt.Errorf("%w: invokable is nil", ErrInvalidCallback)
	}
	return c.token + "::__invoke", nil
}

func (c *invokableCallback) Invoke(args ...any) (any, error) {
	if !c.valid() {
		return nil, fmt.Errorf("%w: invokable is nil", ErrInvalidCallback)
	}
	return c.obj.Invoke(args...)
}

// objectIdentity returns a stable identity for an object, 32 hex digits for pointers.
func objectIdentity(v any) (string, error) {
	if id, ok := v.(Identifier); ok {
		return id.HookIdentity(), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return "", fmt.Errorf("%w: receiver %T has no stable identity", ErrInvalidCallback, v)
	}
	return fmt.Sprintf("%032x", rv.Pointer()), nil
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
