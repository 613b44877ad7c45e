package logging

import (
	"log/slog"
	"strings"
	"time"

	"github.com/isseis/go-utf8conv/internal/color"
)

// skipInteractiveKeys are attributes that only matter in the machine log.
var skipInteractiveKeys = map[string]bool{
	"run_id":   true,
	"hostname": true,
	"pid":      true,
}

// FormatRecord renders r as a single human-readable line, with the record's
// own attributes keyed under prefix:
//
//	[WARN ] message key=value key=value
//
// With useColor the level tag is colored instead of bracketed.
func FormatRecord(r slog.Record, prefix string, attrs []slog.Attr, useColor bool) string {
	var sb strings.Builder

	sb.WriteString(formatLevel(r.Level, useColor))
	sb.WriteString(" ")
	sb.WriteString(r.Message)

	write := func(key string, value slog.Value) {
		if skipInteractiveKeys[key] {
			return
		}
		sb.WriteString(" ")
		sb.WriteString(key)
		sb.WriteString("=")
		sb.WriteString(formatValue(value))
	}

	// attrs already carry the prefix that was active when they were added.
	for _, attr := range attrs {
		write(attr.Key, attr.Value)
	}
	r.Attrs(func(attr slog.Attr) bool {
		write(prefix+attr.Key, attr.Value)
		return true
	})

	return sb.String()
}

// formatLevel formats the log level with visual distinction
func formatLevel(level slog.Level, useColor bool) string {
	if useColor {
		switch {
		case level >= slog.LevelError:
			return color.Red("X ERROR")
		case level >= slog.LevelWarn:
			return color.Yellow("! WARN ")
		case level >= slog.LevelInfo:
			return color.Green("+ INFO ")
		default:
			return color.Gray("* DEBUG")
		}
	}

	switch {
	case level >= slog.LevelError:
		return "[ERROR]"
	case level >= slog.LevelWarn:
		return "[WARN ]"
	case level >= slog.LevelInfo:
		return "[INFO ]"
	default:
		return "[DEBUG]"
	}
}

// formatValue formats a slog.Value for display
func formatValue(value slog.Value) string {
	value = value.Resolve()
	switch value.Kind() {
	case slog.KindTime:
		return value.Time().Format(time.RFC3339)
	case slog.KindGroup:
		attrs := value.Group()
		parts := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			parts = append(parts, attr.Key+"="+formatValue(attr.Value))
		}
		return "{" + strings.Join(parts, ",") + "}"
	default:
		s := value.String()
		if strings.ContainsAny(s, " \t\n\"") {
			return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
		}
		return s
	}
}
