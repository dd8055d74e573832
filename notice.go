package hookline

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
)

// Notice describes a dispatch of a deprecated hook that still has callbacks.
type Notice struct {
	// Hook is the deprecated hook.
	Hook HookName

	// Version is the version the hook was deprecated in.
	Version string

	// Replacement is the hook to use instead, if any.
	Replacement string

	// Message carries additional context about the deprecation.
	Message string

	// Timestamp records when the notice was created.
	Timestamp time.Time
}

// String renders the notice as a human readable sentence.
func (n Notice) String() string {
	var s string
	if n.Replacement != "" {
		s = fmt.Sprintf("Hook %s is deprecated since version %s! Use %s instead.", n.Hook, n.Version, n.Replacement)
	} else {
		s = fmt.Sprintf("Hook %s is deprecated since version %s with no alternative available.", n.Hook, n.Version)
	}
	if n.Message != "" {
		s += " " + n.Message
	}
	return s
}

// NoticeSink receives deprecation notices. Notify must not fail.
type NoticeSink interface {
	Notify(notice Notice)
}

// NoticeSinkFunc adapts a function to NoticeSink.
type NoticeSinkFunc func(notice Notice)

// Notify implements NoticeSink.
func (f NoticeSinkFunc) Notify(notice Notice) { f(notice) }

// LogSink writes deprecation notices as warnings.
type LogSink struct {
	logger arbor.ILogger
}

// NewLogSink creates a LogSink writing to logger.
func NewLogSink(logger arbor.ILogger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify implements NoticeSink.
func (s *LogSink) Notify(notice Notice) {
	s.logger.Warn().
		Str("hook", string(notice.Hook)).
		Str("version", notice.Version).
		Str("replacement", notice.Replacement).
		Msg(notice.String())
}

// deprecations decides whether a deprecated hook dispatch deserves a notice.
type deprecations struct {
	registry *Registry
	sink     NoticeSink
}

// called sends a notice when name has callbacks and reports whether it did.
func (d deprecations) called(name HookName, version, replacement, message string) bool {
	if !d.registry.Has(name) {
		return false
	}
	d.sink.Notify(Notice{
		Hook:        name,
		Version:     version,
		Replacement: replacement,
		Message:     message,
		Timestamp:   time.Now(),
	})
	return true
}
