package lightbox

import (
	"fmt"
	"os"
)

// debugEnabled mirrors the most recently set debug flag so package-level
// helpers without a Viewer pointer can check it cheaply.
var debugEnabled bool

// SetDebugMode enables stderr diagnostics: per-cell load failures,
// swallowed highlight panics, and state transitions.
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

// debugf prints a diagnostic line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !debugEnabled {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[lightbox] "+format+"\n", args...)
}
