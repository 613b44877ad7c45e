// Package terminal provides helpers for detecting terminal capabilities and
// determining whether the current process should be treated as interactive
// or running in a CI/non-interactive environment.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"GITLAB_CI",              // GitLab CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"BUILDKITE",              // Buildkite
	"CIRCLECI",               // Circle CI
	"TF_BUILD",               // Azure DevOps
}

// isTerminal reports whether fd refers to a terminal. Replaced in tests.
var isTerminal = term.IsTerminal

// DetectorOptions contains options for controlling interactive detection
type DetectorOptions struct {
	ForceInteractive    bool // Force interactive mode regardless of environment
	ForceNonInteractive bool // Force non-interactive mode regardless of environment
}

// InteractiveDetector decides whether log output should use the human format.
type InteractiveDetector struct {
	options DetectorOptions
}

// NewInteractiveDetector creates a new interactive detector with the given options
func NewInteractiveDetector(options DetectorOptions) *InteractiveDetector {
	return &InteractiveDetector{options: options}
}

// IsInteractive returns true if the current environment is interactive.
// Explicit options win over CI detection, which wins over the TTY check.
func (d *InteractiveDetector) IsInteractive() bool {
	if d.options.ForceInteractive {
		return true
	}
	if d.options.ForceNonInteractive {
		return false
	}
	if IsCIEnvironment() {
		return false
	}
	return IsTerminal(os.Stderr)
}

// IsTerminal checks whether f is connected to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(int(f.Fd()))
}

// IsCIEnvironment checks if the current environment is a CI/CD system
func IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}
		// CI=false or CI=0 should not be considered a CI environment
		if envVar == "CI" {
			return !isFalsy(value)
		}
		return true
	}
	return false
}

// isTruthy checks if a string value should be considered "true"
func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func isFalsy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "no":
		return true
	default:
		return false
	}
}
