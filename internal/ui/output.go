package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/idilsaglam/tada/internal/model"
)

// current is what the one-shot output helpers render with.
var current = NewStyles(model.ThemeLight)

// SetTheme switches the styles used by OK, Fail and Panel.
func SetTheme(th model.Theme) { current = NewStyles(th) }

// Current exposes the output styles to renderers.
func Current() Styles { return current }

func OK(msg string)   { fmt.Println(current.Success.Render("✔ " + msg)) }
func Fail(msg string) { fmt.Fprintln(os.Stderr, current.Error.Render("✖ "+msg)) }

// Panel draws lines in a rounded frame.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, current.Border.Render(strings.Join(lines, "\n")))
}

// ProgressBar renders a Unicode progress bar with done/total.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}
