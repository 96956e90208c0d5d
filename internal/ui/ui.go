// Package ui prints status lines for interactive, non-CI runs.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// UI writes prefixed, coloured messages to a writer.
// Whether colour is used follows color.NoColor, which fatih/color derives from
// os.Stdout and NO_COLOR, not from the writer passed to New.
type UI struct {
	w io.Writer
}

// New returns a UI writing to w
func New(w io.Writer) *UI {
	return &UI{w: w}
}

// Success prints a green check line
func (u *UI) Success(msg string) {
	fmt.Fprintf(u.w, "%s %s\n", successColor.Sprint("✓"), msg)
}

// Info prints an uncoloured line
func (u *UI) Info(msg string) {
	fmt.Fprintln(u.w, msg)
}

// Step prints a dimmed progress line
func (u *UI) Step(msg string) {
	fmt.Fprintf(u.w, "%s %s\n", dimColor.Sprint("→"), msg)
}

// Warning prints a yellow warning line
func (u *UI) Warning(msg string) {
	fmt.Fprintf(u.w, "%s %s\n", warningColor.Sprint("!"), msg)
}

// Error prints a red error line
func (u *UI) Error(msg string) {
	fmt.Fprintf(u.w, "%s %s\n", errorColor.Sprint("✗"), msg)
}
