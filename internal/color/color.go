// Package color provides small helpers for coloring terminal output using
// ANSI escape sequences.
//
//nolint:revive // package name conflicts with standard library
package color

// ANSI color codes
const (
	resetCode  = "\033[0m"
	grayCode   = "\033[90m" // Bright black/gray
	greenCode  = "\033[32m"
	yellowCode = "\033[33m"
	redCode    = "\033[31m"
)

// Color wraps text with ANSI escape sequences.
type Color func(text string) string

// NewColor creates a color function with the specified ANSI code.
func NewColor(ansiCode string) Color {
	return func(text string) string {
		return ansiCode + text + resetCode
	}
}

// Plain returns text unchanged. It stands in for a Color when output is not
// colored.
func Plain(text string) string {
	return text
}

// Predefined color functions
var (
	Gray   = NewColor(grayCode)
	Green  = NewColor(greenCode)
	Yellow = NewColor(yellowCode)
	Red    = NewColor(redCode)
)

// Enabled returns c when enabled is true and Plain otherwise.
func Enabled(c Color, enabled bool) Color {
	if enabled {
		return c
	}
	return Plain
}
