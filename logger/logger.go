// Package logger provides centralized logging for the application.
// File: logger/logger.go
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ------------------- leveled loggers -------------------

// Logger writes printf-style messages at a fixed level.
type Logger struct {
	level zapcore.Level
	sugar *zap.SugaredLogger
}

// Printf logs a formatted message.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.log(fmt.Sprintf(format, args...))
}

// Println logs its operands separated by spaces.
func (l *Logger) Println(args ...interface{}) {
	l.log(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func (l *Logger) log(msg string) {
	switch l.level {
	case zapcore.DebugLevel:
		l.sugar.Debug(msg)
	case zapcore.WarnLevel:
		l.sugar.Warn(msg)
	case zapcore.ErrorLevel:
		l.sugar.Error(msg)
	default:
		l.sugar.Info(msg)
	}
}

// four logger levels accessible throughout the application
var (
	Info  *Logger
	Warn  *Logger
	Error *Logger
	Debug *Logger
)

var (
	base  *zap.Logger
	level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
)

// ------------------- logger initialization -------------------

// InitLogger builds a logger that writes human-readable lines to stdout and
// JSON lines to logs/<env>_<timestamp>.log.
func InitLogger(env string) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	logFileName := filepath.Join("logs", fmt.Sprintf("%s_%s.log", env, time.Now().Format("2006-01-02_15-04-05")))
	file, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		consoleCore(),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(file), level),
	)
	install(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel)))
	return nil
}

// InitNop discards all output. Used by tests.
func InitNop() {
	install(zap.NewNop())
}

// SetLogLevel silences Debug output in production.
func SetLogLevel(env string) {
	if env == "production" {
		level.SetLevel(zapcore.InfoLevel)
		return
	}
	level.SetLevel(zapcore.DebugLevel)
}

// Sync flushes buffered entries.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

// Zap exposes the underlying logger for libraries that want one.
func Zap() *zap.Logger {
	return base
}

func consoleCore() zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(os.Stdout), level)
}

func install(l *zap.Logger) {
	base = l
	sugar := l.Sugar()
	Info = &Logger{level: zapcore.InfoLevel, sugar: sugar}
	Warn = &Logger{level: zapcore.WarnLevel, sugar: sugar}
	Error = &Logger{level: zapcore.ErrorLevel, sugar: sugar}
	Debug = &Logger{level: zapcore.DebugLevel, sugar: sugar}
}

// console-only until InitLogger runs, so packages can log from init and tests
func init() {
	install(zap.New(consoleCore(), zap.AddCaller(), zap.AddCallerSkip(2)))
}
