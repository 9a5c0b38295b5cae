package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/crop-recommender/config"
	"github.com/rs/zerolog"
)

// TextTimeFormat is the timestamp layout used by the text format
const TextTimeFormat = "2006-01-02 15:04:05,000"

// eventTimeFormat keeps milliseconds on the event timestamp so TextTimeFormat has real digits to render
const eventTimeFormat = "2006-01-02T15:04:05.000Z07:00"

func init() {
	zerolog.TimeFieldFormat = eventTimeFormat
}

type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates a structured logger with validation and defaults
func NewLogger(cfg *config.LoggingConfig) (*Logger, error) {
	format := cfg.Format
	if format == "" {
		format = "text"
	}

	// Console format for development - human-readable to stdout only
	if format == "console" {
		return NewWithWriter(cfg, zerolog.ConsoleWriter{
			Out:     os.Stdout,
			NoColor: false,
		})
	}

	logFile := cfg.File
	if logFile == "" {
		logFile = "api_requests.log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	// Write to both stdout and file
	return NewWithWriter(cfg, io.MultiWriter(os.Stdout, file))
}

// NewWithWriter builds a logger that writes every event to out in the configured format
func NewWithWriter(cfg *config.LoggingConfig, out io.Writer) (*Logger, error) {
	// Set defaults for empty config values
	level := cfg.Level
	if level == "" {
		level = "info"
	}

	format := cfg.Format
	if format == "" {
		format = "text"
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "crop-recommender"
	}

	// Validate log level early to fail fast
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level '%s': %v", level, err)
	}

	var output io.Writer
	switch format {
	case "text":
		output = newTextWriter(out)
	case "json", "console":
		output = out
	default:
		return nil, fmt.Errorf("invalid log format '%s'", format)
	}

	logger := zerolog.New(zerolog.SyncWriter(output)).
		Level(logLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	return &Logger{logger: logger}, nil
}

// newTextWriter renders events as "<timestamp> - <LEVEL> - <message>" lines
func newTextWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: TextTimeFormat,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{"service", "component"},
		FormatLevel: func(i interface{}) string {
			return "- " + strings.ToUpper(fmt.Sprint(i)) + " -"
		},
	}
}

func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

func (l *Logger) Error(msg string) {
	l.logger.Error().Msg(msg)
}

func (l *Logger) Fatal(msg string) {
	l.logger.Fatal().Msg(msg)
}

// WithComponent returns a logger instance with component context
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		logger: l.logger.With().Str("component", component).Logger(),
	}
}
