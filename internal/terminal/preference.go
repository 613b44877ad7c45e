package terminal

import (
	"errors"
	"fmt"
	"os"
)

// ColorMode is the user's color choice from the command line or config file.
type ColorMode string

// Supported color modes
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ErrInvalidColorMode is returned by ParseColorMode for unknown values.
var ErrInvalidColorMode = errors.New("invalid color mode")

// ParseColorMode converts s into a ColorMode. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return ColorMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q (want auto, always or never)", ErrInvalidColorMode, s)
	}
}

// explicitColorPreference resolves an explicit color choice.
// The second result is false when the decision is left to auto-detection.
//
// Priority: command line / config, then CLICOLOR_FORCE, then NO_COLOR.
func explicitColorPreference(mode ColorMode) (useColor, explicit bool) {
	switch mode {
	case ColorAlways:
		return true, true
	case ColorNever:
		return false, true
	}

	if v := os.Getenv("CLICOLOR_FORCE"); v != "" && isTruthy(v) {
		return true, true
	}

	// Any setting of NO_COLOR is explicit, even if empty
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false, true
	}

	return false, false
}
