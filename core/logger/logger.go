package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Config selects the level and output encoding (json or text).
type Config struct {
	Level     string
	Format    string
	AddSource bool
}

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(New(os.Stdout, Config{Level: "info", Format: "text"}))
}

// ParseLevel converts textual levels into slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func New(w io.Writer, cfg Config) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: cfg.AddSource}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init replaces the process logger.
func Init(cfg Config) {
	SetLogger(New(os.Stdout, cfg))
}

func SetLogger(l *slog.Logger) {
	if l != nil {
		current.Store(l)
	}
}

func L() *slog.Logger {
	return current.Load()
}

func Debug(msg string, args ...any) { L().Debug(msg, normalize(args)...) }
func Info(msg string, args ...any)  { L().Info(msg, normalize(args)...) }
func Warn(msg string, args ...any)  { L().Warn(msg, normalize(args)...) }
func Error(msg string, args ...any) { L().Error(msg, normalize(args)...) }

// normalize accepts both key/value pairs and the short form
// logger.Error("Repo:Op", err). A trailing value without a key is logged
// under "error" when it is an error and "detail" otherwise.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	last := args[len(args)-1]
	key := "detail"
	if _, ok := last.(error); ok {
		key = "error"
	}
	out := make([]any, 0, len(args)+1)
	out = append(out, args[:len(args)-1]...)
	return append(out, key, last)
}
