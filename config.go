package hookline

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ternarybob/arbor"
)

// Option configures a Hooks instance.
type Option func(*Hooks)

// WithRegistry uses an existing registry, e.g. one shared by setup code.
func WithRegistry(registry *Registry) Option {
	return func(h *Hooks) {
		h.registry = registry
	}
}

// WithStack uses an existing execution stack.
func WithStack(stack *Stack) Option {
	return func(h *Hooks) {
		h.stack = stack
	}
}

// WithCounters uses existing dispatch counters.
func WithCounters(counters *Counters) Option {
	return func(h *Hooks) {
		h.counters = counters
	}
}

// WithLogger sets the logger used for registration events and, unless
// WithNoticeSink is given, for deprecation notices.
func WithLogger(logger arbor.ILogger) Option {
	return func(h *Hooks) {
		h.logger = logger
	}
}

// WithNoticeSink sets where deprecation notices are sent.
// By default they are logged as warnings.
func WithNoticeSink(sink NoticeSink) Option {
	return func(h *Hooks) {
		h.sink = sink
	}
}

// WithPanicRecovery turns callback panics into *PanicError values returned from
// the dispatch. By default panics propagate to the dispatcher after the execution
// stack has been unwound.
func WithPanicRecovery() Option {
	return func(h *Hooks) {
		h.recoverPanics = true
	}
}

// Config is the file form of a Hooks configuration.
type Config struct {
	Logging      LoggingConfig      `toml:"logging"`
	Dispatch     DispatchConfig     `toml:"dispatch"`
	Deprecations DeprecationsConfig `toml:"deprecations"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level      string `toml:"level"`       // trace, debug, info, warn, error
	Format     string `toml:"format"`      // "text" (logfmt) or "json"
	TimeFormat string `toml:"time_format"` // Go time layout
}

// DispatchConfig controls callback execution.
type DispatchConfig struct {
	RecoverPanics bool `toml:"recover_panics"`
}

// DeprecationsConfig controls deprecation notices.
type DeprecationsConfig struct {
	Notify bool `toml:"notify"`
}

var logLevels = map[string]struct{}{
	"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {},
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "text",
			TimeFormat: "15:04:05.000",
		},
		Deprecations: DeprecationsConfig{
			Notify: true,
		},
	}
}

// LoadConfig reads a TOML configuration file. Keys absent from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseConfig decodes a TOML configuration from data.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if _, ok := logLevels[strings.ToLower(c.Logging.Level)]; !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrConfig, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrConfig, c.Logging.Format)
	}
	return nil
}

// Options converts the configuration into options for New.
func (c Config) Options() []Option {
	opts := []Option{WithLogger(NewLogger(c.Logging))}
	if c.Dispatch.RecoverPanics {
		opts = append(opts, WithPanicRecovery())
	}
	if !c.Deprecations.Notify {
		opts = append(opts, WithNoticeSink(NoticeSinkFunc(func(Notice) {})))
	}
	return opts
}
