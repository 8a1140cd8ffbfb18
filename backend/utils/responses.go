package utils

import (
	"fmt"
	"io"
)

// Success prints a confirmation line.
func Success(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Error prints a user-facing failure line. It is for errors the user can
// recover from; fatal errors are returned instead.
func Error(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// Section prints a "--- TITLE ---" heading preceded by a blank line.
func Section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
}

// Percent formats a percentage with one decimal place.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
