package xlog

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewConfig returns the default logging configuration: INFO level text
// output to stdout with source annotation, no log file.
func NewConfig() Config {
	return Config{
		Level:        slog.LevelInfo,
		AddSource:    true,
		AttrReplacer: NormalizeSourceAttrReplacer(),
		StdFormat:    "text",
		StdWriter:    os.Stdout,
		Path:         "",
		MaxSize:      30,
	}
}

// Config is the logging configuration.
type Config struct {
	// Level is the minimum level to emit, defaults to LevelInfo.
	Level slog.Level
	// AddSource emits the file and line of the log call site.
	AddSource bool
	// AttrReplacer rewrites attributes before output, defaults to
	// NormalizeSourceAttrReplacer.
	AttrReplacer AttrReplacer

	// StdFormat is the standard output format, oneof ["text", "json"].
	StdFormat string
	// StdWriter is the standard output writer, defaults to os.Stdout.
	StdWriter io.Writer

	// Path is the log file path; empty disables file output.
	Path string
	// MaxSize is the maximum size of a single log file in MB before
	// rotation, defaults to 30.
	MaxSize int
	// MaxAge is the maximum number of days to retain rotated files.
	MaxAge int
	// MaxBackups is the maximum number of rotated files to retain.
	MaxBackups int
	// Compress enables compression of rotated files.
	Compress bool
}

// BuildHandler creates a new slog.Handler with config.
func (c *Config) BuildHandler() slog.Handler {
	opts := c.buildHandlerOptions()
	if c.StdFormat == "json" {
		writer := c.StdWriter
		if fw := c.buildFileWriter(); fw != nil {
			writer = io.MultiWriter(c.StdWriter, fw)
		}
		return NewLeveledHandlerCreator(JSONHandlerCreator)(writer, opts)
	}

	// console output format as "text"
	handlers := []slog.Handler{
		NewLeveledHandlerCreator(TextHandlerCreator)(c.StdWriter, opts),
	}
	if fw := c.buildFileWriter(); fw != nil {
		// rotated file output is always json
		handlers = append(handlers, NewLeveledHandlerCreator(JSONHandlerCreator)(fw, opts))
	}
	return MultiHandler(handlers...)
}

func (c *Config) buildFileWriter() io.Writer {
	if c.Path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   c.Path,
		MaxSize:    c.MaxSize,
		MaxAge:     c.MaxAge,
		MaxBackups: c.MaxBackups,
		Compress:   c.Compress,
	}
}

func (c *Config) buildHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   c.AddSource,
		Level:       c.Level,
		ReplaceAttr: c.AttrReplacer,
	}
}
