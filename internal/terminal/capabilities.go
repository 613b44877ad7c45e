package terminal

import "os"

// Options contains all terminal-related configuration options
type Options struct {
	Color    ColorMode
	Detector DetectorOptions
}

// Capabilities answers the two questions output code asks about the terminal.
type Capabilities interface {
	// IsInteractive reports whether logs should use the human format.
	IsInteractive() bool
	// SupportsColor reports whether ANSI colors may be written to f.
	SupportsColor(f *os.File) bool
}

// DefaultCapabilities implements Capabilities from the environment.
type DefaultCapabilities struct {
	detector *InteractiveDetector
	color    ColorMode
}

// NewCapabilities creates a new Capabilities instance with the given options
func NewCapabilities(options Options) *DefaultCapabilities {
	return &DefaultCapabilities{
		detector: NewInteractiveDetector(options.Detector),
		color:    options.Color,
	}
}

// IsInteractive returns true if the current environment should be treated as interactive
func (c *DefaultCapabilities) IsInteractive() bool {
	return c.detector.IsInteractive()
}

// SupportsColor returns true if color output to f should be enabled:
//  1. -color / config value and CLICOLOR_FORCE / NO_COLOR
//  2. f must be a terminal with a color-capable TERM, outside CI
//  3. CLICOLOR, which only applies once 2 holds
func (c *DefaultCapabilities) SupportsColor(f *os.File) bool {
	if useColor, explicit := explicitColorPreference(c.color); explicit {
		return useColor
	}

	if IsCIEnvironment() || !IsTerminal(f) || !TermSupportsColor() {
		return false
	}

	if cliColor := os.Getenv("CLICOLOR"); cliColor != "" {
		return !isFalsy(cliColor)
	}
	return true
}
