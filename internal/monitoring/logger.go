// Package monitoring holds the process-wide diagnostic logger.
package monitoring

import "log"

// Logf is the package-level progress/diagnostic logger, defaulting to
// log.Printf. The CLI replaces it for --quiet runs; tests may mute or
// capture it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. A nil argument installs a no-op
// logger, silencing all diagnostics.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
