package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"docvault"
)

// NewLogger returns a tint logger writing to f at level ("debug", "info",
// "warn" or "error"; empty means "info").
func NewLogger(f *os.File, level string) (*slog.Logger, error) {
	ll := &slog.LevelVar{}
	ll.Set(slog.LevelInfo)
	if level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("%w: log level %q", docvault.ErrConfig, level)
		}
		ll.Set(l)
	}
	return slog.New(tint.NewHandler(colorable.NewColorable(f), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(f.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Drop zero durations, e.g. a watch that never waited.
			if d, ok := a.Value.Any().(time.Duration); ok && d == 0 {
				return slog.Attr{}
			}
			return a
		},
	})), nil
}
