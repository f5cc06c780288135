package logx

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

var Error = tint.Err //nolint:gochecknoglobals

// New builds the process logger. JSON output for collectors, tinted text for
// local development.
func New(level slog.Level, pretty bool) *slog.Logger {
	if pretty {
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
		}))
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}
