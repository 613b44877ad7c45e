package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/isseis/go-utf8conv/internal/terminal"
)

// Static errors for handler validation
var (
	ErrWriterRequired       = errors.New("logging: Writer is required")
	ErrCapabilitiesRequired = errors.New("logging: Capabilities is required")
)

// InteractiveHandler writes short human-readable lines and is only active
// when the process runs on an interactive terminal.
type InteractiveHandler struct {
	capabilities terminal.Capabilities
	writer       io.Writer
	mu           *sync.Mutex
	level        slog.Leveler
	useColor     bool
	attrs        []slog.Attr
	groupPrefix  string
}

// InteractiveHandlerOptions configures the InteractiveHandler.
type InteractiveHandlerOptions struct {
	// Level is the minimum log level to handle
	Level slog.Leveler
	// Writer is the output destination, typically os.Stderr
	Writer io.Writer
	// Capabilities decides whether the handler is active
	Capabilities terminal.Capabilities
	// UseColor enables colored level tags
	UseColor bool
}

// NewInteractiveHandler creates a new InteractiveHandler with the given options.
func NewInteractiveHandler(opts InteractiveHandlerOptions) (*InteractiveHandler, error) {
	if opts.Writer == nil {
		return nil, ErrWriterRequired
	}
	if opts.Capabilities == nil {
		return nil, ErrCapabilitiesRequired
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	return &InteractiveHandler{
		capabilities: opts.Capabilities,
		writer:       opts.Writer,
		mu:           &sync.Mutex{},
		level:        level,
		useColor:     opts.UseColor,
	}, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *InteractiveHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.capabilities.IsInteractive() && level >= h.level.Level()
}

// Handle writes one formatted line for r.
func (h *InteractiveHandler) Handle(_ context.Context, r slog.Record) error {
	if !h.capabilities.IsInteractive() {
		return nil
	}

	line := FormatRecord(r, h.groupPrefix, h.attrs, h.useColor) + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, line)
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *InteractiveHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.groupPrefix + attr.Key, Value: attr.Value})
	}
	return &clone
}

// WithGroup returns a new handler whose later attributes are prefixed with name.
func (h *InteractiveHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groupPrefix = h.groupPrefix + name + "."
	return &clone
}
