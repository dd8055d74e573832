package hookline

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

// NewLogger builds a console logger from cfg.
func NewLogger(cfg LoggingConfig) arbor.ILogger {
	logger := arbor.NewLogger().WithConsoleWriter(writerConfig(cfg))

	level := cfg.Level
	if level == "" {
		level = "warn"
	}
	return logger.WithLevelFromString(level)
}

// writerConfig creates the console writer configuration for cfg.
func writerConfig(cfg LoggingConfig) models.WriterConfiguration {
	// HH:MM:SS.mmm keeps columns aligned
	timeFormat := "15:04:05.000"
	if cfg.TimeFormat != "" {
		timeFormat = cfg.TimeFormat
	}

	outputType := models.OutputFormatLogfmt
	if cfg.Format == "json" {
		outputType = models.OutputFormatJSON
	}

	return models.WriterConfiguration{
		Type:             models.LogWriterTypeConsole,
		TimeFormat:       timeFormat,
		OutputType:       outputType,
		DisableTimestamp: false,
	}
}
