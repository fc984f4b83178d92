// Package ui renders CLI output: ANSI colours and toast notices.
package ui

import "fmt"

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent  = 74  // blue
	colorCmd     = 250 // light gray
	colorMuted   = 245 // medium gray
	colorSuccess = 114 // green
	colorWarn    = 179 // amber
	colorError   = 203 // red
)

var noColor bool

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return render(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return render(colorMuted, s) }

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string { return render(colorCmd, s) }

func RenderSuccess(s string) string { return render(colorSuccess, s) }

func RenderWarn(s string) string { return render(colorWarn, s) }

func RenderError(s string) string { return render(colorError, s) }

// RenderStatus colours a task or RSVP status word.
func RenderStatus(status string) string {
	switch status {
	case "done", "attending", "paid":
		return RenderSuccess(status)
	case "in_progress", "maybe":
		return RenderWarn(status)
	case "declined":
		return RenderError(status)
	default:
		return RenderMuted(status)
	}
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
