package hookline

import "fmt"

// Arg returns args[i] as a T.
// Returns the zero value and false if i is out of range or the value is not a T.
func Arg[T any](args []any, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(args) {
		return zero, false
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// ArgOr returns args[i] as a T, or fallback if it is absent or of another type.
func ArgOr[T any](args []any, i int, fallback T) T {
	if v, ok := Arg[T](args, i); ok {
		return v
	}
	return fallback
}

// Param names a typed positional callback argument.
//
// Example:
//
//	title := hookline.NewParam[string]("title", 0)
//	h.Add("the_title", hookline.Function("shout", func(args ...any) (any, error) {
//	    s, err := title.Require(args)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return strings.ToUpper(s), nil
//	}))
type Param[T any] struct {
	name  string
	index int
}

// NewParam creates a Param for position index.
func NewParam[T any](name string, index int) Param[T] {
	return Param[T]{name: name, index: index}
}

// Name returns the parameter name.
func (p Param[T]) Name() string { return p.name }

// Index returns the parameter position.
func (p Param[T]) Index() int { return p.index }

// From extracts the parameter from args.
func (p Param[T]) From(args []any) (T, bool) {
	return Arg[T](args, p.index)
}

// Require extracts the parameter from args or returns ErrArgument.
func (p Param[T]) Require(args []any) (T, error) {
	v, ok := p.From(args)
	if !ok {
		var zero T
		if p.index < 0 || p.index >= len(args) {
			return zero, fmt.Errorf("%w: %s (position %d) is missing", ErrArgument, p.name, p.index)
		}
		return zero, fmt.Errorf("%w: %s (position %d) is %T, want %s", ErrArgument, p.name, p.index, args[p.index], typeName[T]())
	}
	return v, nil
}
