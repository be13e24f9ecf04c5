// Package log provides colored console logging for wirecat.
package log

import (
	"os"

	"github.com/fatih/color"
)

var red = color.New(color.FgRed).FprintfFunc()
var blue = color.New(color.FgBlue).FprintfFunc()
var yellow = color.New(color.FgYellow).FprintfFunc()

// Logger writes leveled messages to stderr. Verbose messages are dropped
// unless the logger was created with verbose enabled.
type Logger struct {
	verbose bool
}

// NewLogger creates a logger. With verbose set, VerboseMsg output is emitted.
func NewLogger(verbose bool) *Logger {
	return &Logger{verbose: verbose}
}

// ErrorMsg prints an error message to stderr in red color.
func (l *Logger) ErrorMsg(format string, a ...interface{}) {
	red(os.Stderr, "[!] Error: "+format, a...)
}

// InfoMsg prints an informational message to stderr in blue color.
func (l *Logger) InfoMsg(format string, a ...interface{}) {
	blue(os.Stderr, "[+] "+format, a...)
}

// VerboseMsg prints a diagnostic message to stderr in yellow color.
// It is a no-op on a nil or non-verbose logger.
func (l *Logger) VerboseMsg(format string, a ...interface{}) {
	if l == nil || !l.verbose {
		return
	}
	yellow(os.Stderr, "[*] "+format+"\n", a...)
}
