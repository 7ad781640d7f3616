package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevel defines the logging verbosity
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
	LogLevelNone  LogLevel = "none"
)

// slogLevel maps a LogLevel to the slog level used by the handler
func (l LogLevel) slogLevel() slog.Level {
	switch LogLevel(strings.ToLower(string(l))) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	case LogLevelNone:
		// Set to a very high level to suppress all logs
		return slog.Level(1000)
	default:
		return slog.LevelInfo
	}
}

// Logger is the interface for logging during resolution
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	SetTag(tag string)
	SetLevel(level LogLevel)
}

var (
	output   io.Writer = os.Stderr
	outputMu sync.RWMutex
	defLevel = LogLevelInfo
)

// simpleHandler is a simple log handler that outputs standard log format
type simpleHandler struct {
	level *slog.LevelVar
	tag   string
}

func (h *simpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *simpleHandler) Handle(_ context.Context, r slog.Record) error {
	timeStr := r.Time.Format("2006/01/02 15:04:05")
	tag := h.tag
	if tag == "" {
		tag = "CORE"
	}

	outputMu.RLock()
	defer outputMu.RUnlock()
	_, err := fmt.Fprintf(output, "%s [%s] %s %s\n", timeStr, tag, r.Level.String(), r.Message)
	return err
}

func (h *simpleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *simpleHandler) WithGroup(name string) slog.Handler {
	return h
}

// SetupLogger configures the default level of loggers created afterwards
func SetupLogger(level LogLevel) {
	outputMu.Lock()
	defLevel = level
	outputMu.Unlock()
}

// SetOutput redirects every logger to w
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}

// DefaultLogger implements Logger using slog
type DefaultLogger struct {
	handler *simpleHandler
	log     *slog.Logger
}

func NewDefaultLogger() Logger {
	outputMu.RLock()
	level := defLevel
	outputMu.RUnlock()

	lv := &slog.LevelVar{}
	lv.Set(level.slogLevel())
	h := &simpleHandler{level: lv}
	return &DefaultLogger{handler: h, log: slog.New(h)}
}

// NewNopLogger returns a logger that discards everything
func NewNopLogger() Logger {
	l := NewDefaultLogger()
	l.SetLevel(LogLevelNone)
	return l
}

// SetTag sets the tag printed in front of every message of this logger
func (l *DefaultLogger) SetTag(tag string) {
	l.handler.tag = tag
}

// SetLevel changes the verbosity of this logger
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.handler.level.Set(level.slogLevel())
}

func (l *DefaultLogger) Debug(msg string) {
	l.log.Debug(msg)
}

func (l *DefaultLogger) Info(msg string) {
	l.log.Info(msg)
}

func (l *DefaultLogger) Warn(msg string) {
	l.log.Warn(msg)
}

func (l *DefaultLogger) Error(msg string) {
	l.log.Error(msg)
}
