package fileutil

import (
	"fmt"
	"io"
	"os"
)

var (
	// Stderr receives every log line. Tests may replace it.
	Stderr io.Writer = os.Stderr
	// Quiet suppresses LogInfo.
	Quiet bool
)

// LogError prints an error line to stderr.
func LogError(format string, args ...any) {
	fmt.Fprintf(Stderr, format+"\n", args...)
}

// LogWarn prints a warning line to stderr.
func LogWarn(format string, args ...any) {
	fmt.Fprintf(Stderr, "warning: "+format+"\n", args...)
}

// LogInfo prints an informational line to stderr unless Quiet is set.
func LogInfo(format string, args ...any) {
	if Quiet {
		return
	}
	fmt.Fprintf(Stderr, format+"\n", args...)
}
