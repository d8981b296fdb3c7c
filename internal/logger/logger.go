package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger lets other packages hold a logger without importing zerolog.
type Logger = zerolog.Logger

// Event is an alias for zerolog.Event to allow building log entries without importing zerolog.
type Event = zerolog.Event

const consoleTimeFormat = "2006-01-02 15:04:05"

// Options mirrors the LOG_* environment variables.
type Options struct {
	Level    string
	Output   string // stdout, file or both
	Format   string // console or json
	FilePath string
}

// OptionsFromEnv reads LOG_OUTPUT, LOG_FORMAT and LOG_FILE_PATH.
func OptionsFromEnv(level string) Options {
	return Options{
		Level:    level,
		Output:   strings.ToLower(strings.TrimSpace(os.Getenv("LOG_OUTPUT"))),
		Format:   strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),
		FilePath: strings.TrimSpace(os.Getenv("LOG_FILE_PATH")),
	}
}

// Init configures the global logger from the environment at the given level.
func Init(level string) {
	Configure(OptionsFromEnv(level))
}

// Configure installs the global logger described by opts.
func Configure(opts Options) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if opts.Output == "" {
		opts.Output = "stdout"
	}
	if opts.Format == "" {
		opts.Format = "console"
	}

	var warnings []string
	var writers []io.Writer
	toStdout := opts.Output == "stdout" || opts.Output == "both"
	toFile := opts.Output == "file" || opts.Output == "both"

	if toStdout {
		writers = append(writers, formatWriter(opts.Format, os.Stdout))
	}
	if toFile {
		switch file, err := openLogFile(opts.FilePath); {
		case opts.FilePath == "":
			warnings = append(warnings, "LOG_OUTPUT requires a file but LOG_FILE_PATH is not set; disabling file logging")
			toFile = false
		case err != nil:
			warnings = append(warnings, fmt.Sprintf("Failed to open log file '%s', disabling file logging: %v", opts.FilePath, err))
			toFile = false
		default:
			writers = append(writers, formatWriter(opts.Format, file))
		}
	}
	if len(writers) == 0 {
		writers = append(writers, formatWriter("console", os.Stdout))
		warnings = append(warnings, "No valid log output configured, falling back to stdout console")
		toStdout = true
		toFile = false
	}

	output := writers[0]
	if len(writers) > 1 {
		output = zerolog.MultiLevelWriter(writers...)
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
		warnings = append(warnings, fmt.Sprintf("Invalid log level %q, defaulting to 'info'", opts.Level))
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(output).Level(lvl).With().Timestamp().Logger()

	for _, msg := range warnings {
		log.Warn().Msg(msg)
	}
	log.Info().
		Str("level", lvl.String()).
		Str("output_mode", opts.Output).
		Str("format", opts.Format).
		Bool("stdout_enabled", toStdout).
		Bool("file_enabled", toFile).
		Msg("Logger initialized")
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func formatWriter(format string, out io.Writer) io.Writer {
	if format == "json" {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat}
}

// Get returns the configured global logger.
func Get() *zerolog.Logger {
	return &log.Logger
}

// SetOutput redirects log output, typically to a buffer in tests.
func SetOutput(w io.Writer) {
	log.Logger = log.Output(w)
}

// HTTPEvent logs HTTP request events with standardized fields.
func HTTPEvent(method, path string, status int, durationMs float64) *zerolog.Event {
	return log.Info().
		Str("event_category", "http").
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Float64("duration_ms", durationMs)
}

// HTTPError logs HTTP error events.
func HTTPError(method, path string, status int, err error) *zerolog.Event {
	return log.Error().
		Str("event_category", "http").
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Err(err)
}

// FormEvent logs a step of a form submission. Field values are never logged.
func FormEvent(formID, outcome string) *zerolog.Event {
	event := log.Info()
	if outcome == "failed" {
		event = log.Warn()
	}
	return event.
		Str("event_category", "form").
		Str("form", formID).
		Str("outcome", outcome)
}

// PanicEvent logs panic recovery events.
func PanicEvent(err interface{}, stack string) *zerolog.Event {
	return log.Error().
		Str("event_category", "panic").
		Interface("error", err).
		Str("stack", stack)
}
