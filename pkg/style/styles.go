// Package style defines the terminal styles used for portico's
// human-facing output.
package style

import (
	"github.com/pterm/pterm"
)

// Base styles
var (
	SuccessStyle = pterm.NewStyle(pterm.FgGreen)
	ErrorStyle   = pterm.NewStyle(pterm.FgRed)
	WarningStyle = pterm.NewStyle(pterm.FgYellow)
	MutedStyle   = pterm.NewStyle(pterm.FgGray)
)

// Success formats a success message
func Success(msg string) string {
	return SuccessStyle.Sprint(msg)
}

// Error formats an error message
func Error(msg string) string {
	return ErrorStyle.Sprint(msg)
}

// Warning formats a warning message
func Warning(msg string) string {
	return WarningStyle.Sprint(msg)
}
