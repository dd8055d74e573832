package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

var errScript = errors.New("invalid script")

// Script is a decoded hook script.
type Script struct {
	Callbacks  []CallbackEntry   `toml:"callback"`
	Actions    []ActionEntry     `toml:"action"`
	Filters    []FilterEntry     `toml:"filter"`
	Deprecated []DeprecatedEntry `toml:"deprecated"`
}

// CallbackEntry attaches a built-in to a hook. Absent priority and accepted_args
// use the registry defaults.
type CallbackEntry struct {
	Hook         string `toml:"hook"`
	Func         string `toml:"func"`
	Priority     *int   `toml:"priority"`
	AcceptedArgs *int   `toml:"accepted_args"`
}

// ActionEntry dispatches an action.
type ActionEntry struct {
	Hook string `toml:"hook"`
	Args []any  `toml:"args"`
}

// FilterEntry dispatches a filter over value.
type FilterEntry struct {
	Hook  string `toml:"hook"`
	Value any    `toml:"value"`
	Args  []any  `toml:"args"`
}

// DeprecatedEntry dispatches a deprecated hook. For filters the value is args[0].
type DeprecatedEntry struct {
	Hook        string `toml:"hook"`
	Kind        string `toml:"kind"` // "action" (default) or "filter"
	Args        []any  `toml:"args"`
	Version     string `toml:"version"`
	Replacement string `toml:"replacement"`
	Message     string `toml:"message"`
}

// loadScript reads and validates a script file.
func loadScript(path string) (*Script, error) {
	var script Script
	md, err := toml.DecodeFile(path, &script)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errScript, path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s: unknown keys %s", errScript, path, strings.Join(keys, ", "))
	}

	if err := script.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errScript, path, err)
	}
	return &script, nil
}

func (s *Script) validate() error {
	for i, c := range s.Callbacks {
		if c.Hook == "" {
			return fmt.Errorf("callback %d: missing hook", i)
		}
		if _, ok := builtinDocs[c.Func]; !ok {
			return fmt.Errorf("callback %d: unknown built-in %q", i, c.Func)
		}
	}
	for i, a := range s.Actions {
		if a.Hook == "" {
			return fmt.Errorf("action %d: missing hook", i)
		}
	}
	for i, f := range s.Filters {
		if f.Hook == "" {
			return fmt.Errorf("filter %d: missing hook", i)
		}
	}
	for i, d := range s.Deprecated {
		if d.Hook == "" {
			return fmt.Errorf("deprecated %d: missing hook", i)
		}
		switch d.Kind {
		case "", "action", "filter":
		default:
			return fmt.Errorf("deprecated %d: unknown kind %q", i, d.Kind)
		}
	}
	return nil
}
