package convert

import (
	"fmt"
	"io"

	"github.com/isseis/go-utf8conv/internal/color"
)

// statusColors maps an outcome to the color of its label.
var statusColors = map[Outcome]color.Color{
	OutcomeConverted:   color.Green,
	OutcomeAlreadyUTF8: color.Gray,
	OutcomeFailed:      color.Red,
}

// FormatStatus returns the status line for the file at index, without a
// trailing newline:
//
//	[  0] Converted: /abs/dir/b.txt
//	[  1] Already UTF-8: /abs/dir/c.txt
func FormatStatus(index int, outcome Outcome, path string, useColor bool) string {
	label := outcome.String()
	if c, ok := statusColors[outcome]; ok {
		label = color.Enabled(c, useColor)(label)
	}
	return fmt.Sprintf("[%3d] %s: %s", index, label, path)
}

// FormatSummary returns the closing line printed in keep-going mode.
func FormatSummary(s *Summary) string {
	return fmt.Sprintf("Summary: %d converted, %d already UTF-8, %d failed",
		s.Converted, s.AlreadyUTF8, len(s.Failures))
}

func writeLine(w io.Writer, line string) {
	_, _ = fmt.Fprintln(w, line)
}
