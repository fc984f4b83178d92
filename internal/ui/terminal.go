package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColor reports whether stdout gets ANSI colour.
func ShouldUseColor() bool { return ColorFor(os.Stdout) }

// ColorFor reports whether f gets ANSI colour. NO_COLOR (any value) and
// TERM=dumb turn colour off, CLICOLOR_FORCE=1 turns it on without a TTY,
// and CLICOLOR=0 turns it off.
func ColorFor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}
