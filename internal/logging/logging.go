// Package logging builds the slog logger shared by the commands.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Verbose mode logs at debug level;
// otherwise only warnings and errors are shown.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
