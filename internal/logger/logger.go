package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger and implements the telegram BotLogger interface.
type Logger struct {
	*slog.Logger
}

func New(level string) *Logger {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Used by tests and tools.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// telegram BotLogger interface methods

func (l *Logger) Printf(format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Println(args ...any) {
	l.Debug(fmt.Sprint(args...))
}

// MongoSink adapts the logger to the mongo-driver LogSink interface.
type MongoSink struct {
	log *slog.Logger
}

func (l *Logger) MongoSink() *MongoSink {
	return &MongoSink{log: l.Logger.With("component", "mongo")}
}

// Info receives driver messages; level 1 is info, anything higher is debug.
func (s *MongoSink) Info(level int, message string, keysAndValues ...any) {
	if level > 1 {
		s.log.Debug(message, keysAndValues...)
		return
	}
	s.log.Info(message, keysAndValues...)
}

func (s *MongoSink) Error(err error, message string, keysAndValues ...any) {
	s.log.Error(message, append(keysAndValues, "error", err)...)
}
