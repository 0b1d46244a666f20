package config

import (
	"io"
	"log"
	"os"
)

// OpenDiagnosticsLog returns a logger writing to ~/.claudectl/client.log.
// The TUI owns the terminal, so diagnostics (such as swallowed poll-tick
// failures) must never go to stdout/stderr. If the log file cannot be
// opened the logger discards everything rather than failing the client.
func OpenDiagnosticsLog() *log.Logger {
	path, err := GlobalLogFile()
	if err != nil {
		return log.New(io.Discard, "", 0)
	}
	if err := EnsureGlobalDir(); err != nil {
		return log.New(io.Discard, "", 0)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard, "", 0)
	}
	return log.New(f, "", log.LstdFlags|log.Lmsgprefix)
}
