package terminal

import (
	"os"
	"strings"
)

// colorTerminals lists TERM values (or prefixes) that are known to support
// basic terminal colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"ansi",
	"linux",
	"cygwin",
	"putty",
}

// TermSupportsColor reports whether the TERM environment variable names a
// terminal known to understand ANSI colors. Unknown terminals get no color.
func TermSupportsColor() bool {
	termName := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	if termName == "" || termName == "dumb" {
		return false
	}

	for _, colorTerm := range colorTerminals {
		if termName == colorTerm || strings.HasPrefix(termName, colorTerm+"-") {
			return true
		}
	}
	return false
}
