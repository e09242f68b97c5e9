// file: logger/logger_test.go
package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLeveledLoggers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	install(zap.New(core))
	t.Cleanup(InitNop)

	Info.Printf("[Test] hello %s", "world")
	Warn.Println("[Test]", "careful")
	Error.Printf("[Test] failed: %v", assert.AnError)
	Debug.Println("[Test] details")

	entries := logs.All()
	if assert.Len(t, entries, 4) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, "[Test] hello world", entries[0].Message)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, "[Test] careful", entries[1].Message)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
		assert.Equal(t, zapcore.DebugLevel, entries[3].Level)
	}
}

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(func() { SetLogLevel("development") })

	SetLogLevel("production")
	assert.False(t, level.Enabled(zapcore.DebugLevel))
	assert.True(t, level.Enabled(zapcore.InfoLevel))

	SetLogLevel("development")
	assert.True(t, level.Enabled(zapcore.DebugLevel))
}

func TestInitLogger_WritesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Cleanup(InitNop)

	assert.NoError(t, InitLogger("test"))
	Info.Println("[Test] to file")
	Sync()

	matches, err := filepath.Glob("logs/test_*.log")
	assert.NoError(t, err)
	assert.Len(t, matches, 1)
}
