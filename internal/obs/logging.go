// Package obs contains observability utilities such as logging.
package obs

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the global structured logger used by the service. Packages
// may log through it before InitLogger runs; until then records are
// discarded.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// InitLogger initializes the global Logger with a JSON handler at info
// level, tagged with the service name.
func InitLogger() {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	Logger = slog.New(h).With("service", "ecocart")
}
