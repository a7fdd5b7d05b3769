// Package logging wires slog to the console and a weekly rotating JSON file
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/giygas/lactancia-api/config"
)

// Options controls Init
type Options struct {
	Dir            string
	Env            config.Environment
	Level          string
	RetentionWeeks int
	MaxFileSize    int64
	Console        io.Writer // defaults to stdout
	Verbose        bool      // lets test runs log at info
}

var (
	mu      sync.RWMutex
	current *slog.Logger
	file    *RotatingFile
)

// Init builds the global logger and installs it as the slog default.
// When the log directory is unusable only the console handler is kept.
func Init(opts Options) *slog.Logger {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	handlers := fanout{slog.NewTextHandler(console, &slog.HandlerOptions{
		Level: GetConsoleLogLevel(opts.Env, opts.Level, opts.Verbose),
	})}

	rf, err := NewRotatingFile(opts.Dir, opts.RetentionWeeks, opts.MaxFileSize)
	if err == nil {
		handlers = append(handlers, slog.NewJSONHandler(rf, &slog.HandlerOptions{
			Level: GetFileLogLevel(),
		}))
	}

	logger := slog.New(handlers)

	mu.Lock()
	if file != nil {
		_ = file.Close()
	}
	current, file = logger, rf
	mu.Unlock()

	slog.SetDefault(logger)
	if err != nil {
		logger.Error("File logging disabled", "dir", opts.Dir, "error", err)
	}
	return logger
}

// Close flushes and closes the rotating file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

// Logger returns the global logger, or the slog default before Init
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return slog.Default()
	}
	return current
}

func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }

func Info(msg string, args ...any) { Logger().Info(msg, args...) }

func Warn(msg string, args ...any) { Logger().Warn(msg, args...) }

func Error(msg string, args ...any) { Logger().Error(msg, args...) }
