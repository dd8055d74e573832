package hookline

import "fmt"

//go:generate mockgen -destination "mock_sink_test.go" -package $GOPACKAGE -write_package_comment=false github.com/zoobzio/hookline NoticeSink

// newTestHooks creates a Hooks instance that only logs errors.
func newTestHooks(opts ...Option) *Hooks {
	base := []Option{WithLogger(NewLogger(LoggingConfig{Level: "error", Format: "text"}))}
	return New(append(base, opts...)...)
}

// recorder returns a callback named name that appends name to *calls.
func recorder(name string, calls *[]string) Callback {
	return Function(name, func(...any) (any, error) {
		*calls = append(*calls, name)
		return nil, nil
	})
}

// appender returns a filter callback that appends suffix to a string value.
func appender(suffix string) Callback {
	return Function("append_"+suffix, func(args ...any) (any, error) {
		return fmt.Sprint(args[0]) + suffix, nil
	})
}

// identities returns the callback identities of entries in order.
func identities(entries []Registered) []string {
	ids := make([]string, 0, len(entries))
	for _, r := range entries {
		id, err := r.Callback.Identity()
		if err != nil {
			id = "<invalid>"
		}
		ids = append(ids, id)
	}
	return ids
}

func noop(...any) (any, error) { return nil, nil }
