// Package terminal reports the size of the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24

	// MinWidth is the narrowest width reported
	MinWidth = 40
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if stdout is not a terminal.
func GetSize() (width, height int) {
	return SizeOf(os.Stdout)
}

// SizeOf returns the size of the terminal behind f, never narrower than
// MinWidth. Falls back to defaults if f is not a terminal.
func SizeOf(f *os.File) (width, height int) {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return max(width, MinWidth), height
}

// GetWidth returns the current terminal width.
func GetWidth() int {
	width, _ := GetSize()
	return width
}
