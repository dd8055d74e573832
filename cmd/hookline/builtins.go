package main

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zoobzio/hookline"
)

var errFail = errors.New("fail called")

var builtinDocs = map[string]string{
	"upper":     "upper-case the first argument",
	"lower":     "lower-case the first argument",
	"trim":      "trim surrounding whitespace from the first argument",
	"reverse":   "reverse the first argument",
	"double":    "double a number, or repeat a string",
	"increment": "add one to a number",
	"suffix":    "append the remaining arguments to the first",
	"trace":     "print the current hook and callback, pass the first argument through",
	"fail":      "return an error",
}

// newBuiltins defines the built-in callbacks. trace writes to out and reads h's stack.
func newBuiltins(h *hookline.Hooks, out io.Writer) *hookline.FuncTable {
	table := hookline.NewFuncTable()

	table.Define("upper", text(strings.ToUpper))
	table.Define("lower", text(strings.ToLower))
	table.Define("trim", text(strings.TrimSpace))
	table.Define("reverse", text(func(s string) string {
		r := []rune(s)
		slices.Reverse(r)
		return string(r)
	}))

	table.Define("double", func(args ...any) (any, error) {
		switch v := first(args).(type) {
		case int64:
			return v * 2, nil
		case float64:
			return v * 2, nil
		case string:
			return v + v, nil
		default:
			return nil, fmt.Errorf("%w: double: unsupported %T", hookline.ErrArgument, v)
		}
	})

	table.Define("increment", func(args ...any) (any, error) {
		switch v := first(args).(type) {
		case int64:
			return v + 1, nil
		case float64:
			return v + 1, nil
		default:
			return nil, fmt.Errorf("%w: increment: unsupported %T", hookline.ErrArgument, v)
		}
	})

	table.Define("suffix", func(args ...any) (any, error) {
		var b strings.Builder
		for _, a := range args {
			fmt.Fprint(&b, a)
		}
		return b.String(), nil
	})

	table.Define("trace", func(args ...any) (any, error) {
		hook, _ := h.CurrentHook()
		callback, _ := h.CurrentCallback()
		fmt.Fprintf(out, "trace %s %s\n", hook, callback)
		return first(args), nil
	})

	table.Define("fail", func(...any) (any, error) {
		return nil, errFail
	})

	return table
}

func text(fn func(string) string) hookline.Func {
	return func(args ...any) (any, error) {
		return fn(fmt.Sprint(first(args))), nil
	}
}

func first(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

func newBuiltinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builtins",
		Short: "List the built-in callbacks.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range newBuiltins(hookline.New(), io.Discard).Names() {
				fmt.Fprintf(out, "%-10s %s\n", name, builtinDocs[name])
			}
		},
	}
}
