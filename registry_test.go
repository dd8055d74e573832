package hookline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegistryLazyCreateAndPrune verifies lists appear on Add and vanish once empty.
func TestRegistryLazyCreateAndPrune(t *testing.T) {
	r := NewRegistry()
	cb := Function("cb", noop)

	assert.Empty(t, r.Names())
	assert.False(t, r.Has("init"))

	r.Add("init", cb, 10, 1)
	assert.Equal(t, []HookName{"init"}, r.Names())
	assert.True(t, r.Has("init"))

	require.True(t, r.Remove("init", cb, 10))
	assert.Empty(t, r.Names())
	assert.False(t, r.Has("init"))
	assert.Equal(t, 0, r.Len("init"))
}

// TestRegistryMissingHook verifies operations on unknown hooks are silent.
func TestRegistryMissingHook(t *testing.T) {
	r := NewRegistry()
	cb := Function("cb", noop)

	assert.False(t, r.Remove("nope", cb, 10))
	r.RemoveAll("nope")
	r.RemoveAt("nope", 10)
	_, ok := r.Priority("nope", cb)
	assert.False(t, ok)
	assert.False(t, r.HasAt("nope", cb, 10))
	assert.Nil(t, r.Snapshot("nope"))

	require.NoError(t, r.Dispatch("nope", 1, 2))
	out, err := r.Filter("nope", "value")
	require.NoError(t, err)
	assert.Equal(t, "value", out)
}

// TestRegistryRemoveAtPrunes verifies clearing the last priority drops the hook.
func TestRegistryRemoveAtPrunes(t *testing.T) {
	r := NewRegistry()
	r.Add("save", Function("a", noop), 5, 1)
	r.Add("save", Function("b", noop), 10, 1)

	r.RemoveAt("save", 5)
	assert.Equal(t, 1, r.Len("save"))

	r.RemoveAt("save", 10)
	assert.Empty(t, r.Names())
}

// TestRegistryDispatchTruncatesArgs verifies each callback receives at most its accepted args.
func TestRegistryDispatchTruncatesArgs(t *testing.T) {
	r := NewRegistry()

	var two, one, many []any
	r.Add("evt", Function("two", func(args ...any) (any, error) {
		two = args
		return nil, nil
	}), 10, 2)
	r.Add("evt", Function("one", func(args ...any) (any, error) {
		one = args
		return nil, nil
	}), 10, 1)
	r.Add("evt", Function("many", func(args ...any) (any, error) {
		many = args
		return nil, nil
	}), 10, 9)

	require.NoError(t, r.Dispatch("evt", "a", "b", "c", "d"))

	assert.Equal(t, []any{"a", "b"}, two)
	assert.Equal(t, []any{"a"}, one)
	assert.Equal(t, []any{"a", "b", "c", "d"}, many, "no padding beyond what was supplied")
}

// TestRegistryDispatchDiscardsResults verifies actions ignore return values and keep args intact.
func TestRegistryDispatchDiscardsResults(t *testing.T) {
	r := NewRegistry()

	var seen []any
	r.Add("evt", Function("mutate", func(args ...any) (any, error) {
		args[0] = "changed"
		return "ignored", nil
	}), 1, 1)
	r.Add("evt", Function("observe", func(args ...any) (any, error) {
		seen = args
		return nil, nil
	}), 2, 1)

	require.NoError(t, r.Dispatch("evt", "original"))
	assert.Equal(t, []any{"original"}, seen)
}

// TestRegistryFilterComposition verifies filters compose left to right by priority.
func TestRegistryFilterComposition(t *testing.T) {
	r := NewRegistry()
	r.Add("title", appender("B"), 10, 1)
	r.Add("title", appender("A"), 5, 1)

	out, err := r.Filter("title", "X")
	require.NoError(t, err)
	assert.Equal(t, "XAB", out)
}

// TestRegistryFilterCalc verifies double (priority 5) runs before increment (priority 10).
func TestRegistryFilterCalc(t *testing.T) {
	r := NewRegistry()
	r.Add("calc", Function("increment", func(args ...any) (any, error) {
		return args[0].(int) + 1, nil
	}), 10, 1)
	r.Add("calc", Function("double", func(args ...any) (any, error) {
		return args[0].(int) * 2, nil
	}), 5, 1)

	out, err := r.Filter("calc", 3)
	require.NoError(t, err)
	assert.Equal(t, 7, out)
}

// TestRegistryFilterPassThrough verifies values pass unchanged through a hook without callbacks.
func TestRegistryFilterPassThrough(t *testing.T) {
	r := NewRegistry()

	values := []any{nil, "", 0, false, map[string]int{"a": 1}, []string{"x"}}
	for _, v := range values {
		out, err := r.Filter("empty", v)
		require.NoError(t, err)
		assert.Equal(t, v, out)
	}
}

// TestRegistryFilterArgs verifies filter callbacks receive the value first, then extra args.
func TestRegistryFilterArgs(t *testing.T) {
	r := NewRegistry()

	var one, three []any
	r.Add("f", Function("one", func(args ...any) (any, error) {
		one = args
		return "v1", nil
	}), 1, 1)
	r.Add("f", Function("three", func(args ...any) (any, error) {
		three = args
		return "v2", nil
	}), 2, 3)

	out, err := r.Filter("f", "v0", "x", "y", "z")
	require.NoError(t, err)

	assert.Equal(t, "v2", out)
	assert.Equal(t, []any{"v0"}, one)
	assert.Equal(t, []any{"v1", "x", "y"}, three)
}

// TestRegistryDispatchErrorStops verifies the first error aborts the remaining callbacks.
func TestRegistryDispatchErrorStops(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")

	var calls []string
	r.Add("evt", recorder("first", &calls), 1, 1)
	r.Add("evt", Function("fail", func(...any) (any, error) {
		return nil, boom
	}), 2, 1)
	r.Add("evt", recorder("never", &calls), 3, 1)

	err := r.Dispatch("evt")
	assert.Equal(t, boom, err)
	assert.Equal(t, []string{"first"}, calls)

	_, err = r.Filter("evt", "v")
	assert.ErrorIs(t, err, boom)
}

// TestRegistryDispatchInvalidCallback verifies an invalid callback surfaces at dispatch.
func TestRegistryDispatchInvalidCallback(t *testing.T) {
	r := NewRegistry()
	r.Add("evt", Function("ghost", nil), 10, 1)

	err := r.Dispatch("evt")
	assert.ErrorIs(t, err, ErrInvalidCallback)
}

// TestRegistryMutationDuringDispatch verifies changes made by callbacks apply to the next dispatch only.
func TestRegistryMutationDuringDispatch(t *testing.T) {
	r := NewRegistry()

	var calls []string
	late := recorder("late", &calls)
	sibling := recorder("sibling", &calls)

	r.Add("evt", Function("mutator", func(...any) (any, error) {
		calls = append(calls, "mutator")
		r.Add("evt", late, 1, 1)
		r.Remove("evt", sibling, 20)
		return nil, nil
	}), 10, 1)
	r.Add("evt", sibling, 20, 1)

	require.NoError(t, r.Dispatch("evt"))
	assert.Equal(t, []string{"mutator", "sibling"}, calls)

	calls = nil
	require.NoError(t, r.Dispatch("evt"))
	assert.Equal(t, []string{"late", "mutator"}, calls)
}
