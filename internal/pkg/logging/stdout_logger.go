package logging

import (
	"log/slog"
	"os"
)

// Logger is the narrow logging seam shared by every layer. slog.Logger
// satisfies it directly.
type Logger interface {
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
}

var StdoutLogger Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
