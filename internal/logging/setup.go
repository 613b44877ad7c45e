package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/isseis/go-utf8conv/internal/terminal"
)

// ErrInvalidLogLevel is returned by ParseLevel for unknown level names.
var ErrInvalidLogLevel = errors.New("invalid log level")

// ParseLevel converts a level name (debug, info, warn, error) into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q (want debug, info, warn or error)", ErrInvalidLogLevel, s)
	}
}

// Config holds all configuration for logger setup
type Config struct {
	Level slog.Level
	// LogDir enables the JSON run log when non-empty.
	LogDir string
	RunID  string
	// Console receives human or text output; defaults to os.Stderr.
	Console io.Writer
	// Capabilities selects between the interactive and the text handler.
	Capabilities terminal.Capabilities
	// UseColor colors the interactive handler's level tags.
	UseColor bool
}

// Setup builds the handler stack described by cfg and returns a logger
// together with a function that closes the run log, if any. Setup does not
// touch slog's default logger; callers decide whether to install it.
func Setup(cfg Config) (*slog.Logger, func() error, error) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	if cfg.Capabilities == nil {
		return nil, nil, ErrCapabilitiesRequired
	}

	interactive, err := NewInteractiveHandler(InteractiveHandlerOptions{
		Level:        cfg.Level,
		Writer:       console,
		Capabilities: cfg.Capabilities,
		UseColor:     cfg.UseColor,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create interactive handler: %w", err)
	}

	text, err := NewConditionalTextHandler(ConditionalTextHandlerOptions{
		Capabilities:       cfg.Capabilities,
		TextHandlerOptions: &slog.HandlerOptions{Level: cfg.Level},
		Writer:             console,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create text handler: %w", err)
	}

	handlers := []slog.Handler{interactive, text}
	closeFn := func() error { return nil }

	if cfg.LogDir != "" {
		logF, err := openLogFile(cfg.LogDir, cfg.RunID, time.Now())
		if err != nil {
			return nil, nil, err
		}
		closeFn = logF.Close

		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}

		// The file records everything from debug up, whatever the console level.
		jsonHandler := slog.NewJSONHandler(logF, &slog.HandlerOptions{Level: slog.LevelDebug}).
			WithAttrs([]slog.Attr{
				slog.String("run_id", cfg.RunID),
				slog.String("hostname", hostname),
				slog.Int("pid", os.Getpid()),
			})
		handlers = append(handlers, jsonHandler)
	}

	logger := slog.New(NewMultiHandler(handlers...))
	logger.Debug("Logger initialized",
		"log_level", cfg.Level.String(),
		"log_dir", cfg.LogDir,
		"interactive_mode", cfg.Capabilities.IsInteractive(),
		"color_support", cfg.UseColor)

	return logger, closeFn, nil
}
