package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// SetColorMode applies auto, always or never to every lipgloss style.
// auto keeps colour only when stdout is a terminal.
func SetColorMode(mode string) {
	switch strings.ToLower(mode) {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI256)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		if !isTTY(os.Stdout) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
	}
}

func isTTY(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }

// OK prints a success line.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Success.Render(current.SymDone+" "+msg))
}

// Fail prints an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, current.Error.Render("✖ "+msg))
}
