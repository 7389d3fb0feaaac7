// Package debug provides diagnostic logging gated on the GID_DEBUG
// environment variable.
package debug

import (
	"fmt"
	"os"
)

var (
	enabled   = os.Getenv("GID_DEBUG") != ""
	quietMode = false
)

func Enabled() bool {
	return enabled
}

// SetQuiet suppresses non-essential output
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quietMode
}

func Logf(format string, args ...interface{}) {
	if enabled {
		fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
	}
}

// PrintNormal prints output unless quiet mode is enabled
func PrintNormal(format string, args ...interface{}) {
	if !quietMode {
		fmt.Printf(format, args...)
	}
}
