package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ConfigureColors turns styling off when stdout is not a terminal or NO_COLOR is set
func ConfigureColors() {
	if !ColorsEnabled() {
		DisableColors()
	}
}

// DisableColors renders every style as plain text
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ColorsEnabled reports whether styled output should be produced on stdout
func ColorsEnabled() bool {
	return ColorsEnabledFor(os.Stdout)
}

// ColorsEnabledFor reports whether styled output should be written to w. Only
// terminals get colors; buffers and other writers without a file descriptor
// never do.
func ColorsEnabledFor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorTag colors a version tag
func ColorTag(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Bold(true).
		Render(text)
}

// ColorTitle colors a version title
func ColorTitle(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("7")).
		Render(text)
}

// ColorAlias colors an alias
func ColorAlias(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorDim dims secondary text such as commit hashes
func ColorDim(text string) string {
	return lipgloss.NewStyle().
		Faint(true).
		Render(text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render(text)
}
