package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColors(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{name: "gray", color: Gray, want: "\033[90mtext\033[0m"},
		{name: "green", color: Green, want: "\033[32mtext\033[0m"},
		{name: "yellow", color: Yellow, want: "\033[33mtext\033[0m"},
		{name: "red", color: Red, want: "\033[31mtext\033[0m"},
		{name: "plain", color: Plain, want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.color("text"))
		})
	}
}

func TestEnabled(t *testing.T) {
	assert.Equal(t, "\033[32mok\033[0m", Enabled(Green, true)("ok"))
	assert.Equal(t, "ok", Enabled(Green, false)("ok"))
}
