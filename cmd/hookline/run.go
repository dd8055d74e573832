package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"github.com/zoobzio/hookline"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script.toml>",
		Short: "Run a hook script.",
		Long: "`run script.toml` registers the script's callbacks, then runs its " +
			"actions, filters and deprecated dispatches in that order.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runConfig(cmd)
			if err != nil {
				return err
			}

			script, err := loadScript(args[0])
			if err != nil {
				return err
			}

			return runScript(cmd.OutOrStdout(), cfg, script)
		},
	}

	cmd.Flags().String("config", "", "TOML configuration file")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn or error")
	cmd.Flags().String("format", "", "Log format: text or json")
	cmd.Flags().Bool("recover", false, "Report callback panics as errors")
	return cmd
}

// runConfig loads the optional configuration file and applies flag overrides.
func runConfig(cmd *cobra.Command) (hookline.Config, error) {
	cfg := hookline.DefaultConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := hookline.LoadConfig(path)
		if err != nil {
			return hookline.Config{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("format") {
		cfg.Logging.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("recover") {
		cfg.Dispatch.RecoverPanics, _ = cmd.Flags().GetBool("recover")
	}

	return cfg, cfg.Validate()
}

// runScript registers the script's callbacks on a fresh Hooks and runs its dispatches.
func runScript(out io.Writer, cfg hookline.Config, script *Script) error {
	opts := cfg.Options()
	if cfg.Deprecations.Notify {
		opts = append(opts, hookline.WithNoticeSink(hookline.NoticeSinkFunc(func(n hookline.Notice) {
			fmt.Fprintf(out, "notice %s\n", n)
		})))
	}
	h := hookline.New(opts...)
	table := newBuiltins(h, out)

	for _, c := range script.Callbacks {
		var addOpts []hookline.AddOption
		if c.Priority != nil {
			addOpts = append(addOpts, hookline.AtPriority(*c.Priority))
		}
		if c.AcceptedArgs != nil {
			addOpts = append(addOpts, hookline.Accepting(*c.AcceptedArgs))
		}
		h.Add(hookline.HookName(c.Hook), table.Ref(c.Func), addOpts...)
	}

	for _, a := range script.Actions {
		report(out, "action", a.Hook, nil, h.DoAction(hookline.HookName(a.Hook), a.Args...))
	}

	for _, f := range script.Filters {
		value, err := h.ApplyFilter(hookline.HookName(f.Hook), f.Value, f.Args...)
		report(out, "filter", f.Hook, value, err)
	}

	for _, d := range script.Deprecated {
		name := hookline.HookName(d.Hook)
		switch d.Kind {
		case "filter":
			result, err := h.ApplyFilterDeprecated(name, d.Args, d.Version, d.Replacement, d.Message)
			report(out, "filter", d.Hook, result, err)
		default:
			err := h.DoActionDeprecated(name, d.Args, d.Version, d.Replacement, d.Message)
			report(out, "action", d.Hook, nil, err)
		}
	}

	counts := h.Counters().Snapshot()
	for _, name := range slices.Sorted(maps.Keys(counts)) {
		fmt.Fprintf(out, "count %s %d\n", name, counts[name])
	}
	return nil
}

func report(out io.Writer, kind, hook string, value any, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(out, "%s %s: error: %v\n", kind, hook, err)
	case kind == "filter":
		fmt.Fprintf(out, "%s %s: %v\n", kind, hook, value)
	default:
		fmt.Fprintf(out, "%s %s: ok\n", kind, hook)
	}
}
