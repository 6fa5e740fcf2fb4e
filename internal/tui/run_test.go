package tui

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/intake/internal/common"
	"github.com/Veraticus/intake/internal/model"
)

// captureStderr points os.Stderr at a pipe and returns a func that restores
// it and yields everything written meanwhile.
func captureStderr(t *testing.T) func() string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stderr
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	return func() string {
		os.Stderr = orig
		_ = w.Close()
		return <-done
	}
}

func TestRedirectLogging_ConsoleSaveWritesNothingToStderr(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	f := newFixture(t)
	m := startModel(t, f.svc)

	stderr := captureStderr(t)
	// The CLI installs this logger before the console starts.
	require.NoError(t, common.SetupLogger(slog.LevelInfo, "console"))
	cliLogger := slog.Default()

	restore := redirectLogging(io.Discard, slog.LevelInfo)
	msg := m.saveCategory("", model.CategoryInput{Name: "Jalur Baru"})()
	restore()

	assert.Same(t, cliLogger, slog.Default(), "previous logger is reinstated")
	assert.Empty(t, stderr())

	done, ok := msg.(mutationDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
}

func TestRedirectLogging_WritesToConfiguredOutput(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	f := newFixture(t)
	m := startModel(t, f.svc)

	var logs bytes.Buffer
	restore := redirectLogging(&logs, slog.LevelInfo)
	_ = m.saveCategory("", model.CategoryInput{Name: "Jalur Afirmasi"})()
	restore()

	assert.Contains(t, logs.String(), "created category")
	assert.Contains(t, logs.String(), "slug=jalur-afirmasi")
}

func TestWithLogOutput(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, io.Discard, cfg.LogOutput)

	var buf bytes.Buffer
	WithLogOutput(&buf, slog.LevelDebug)(&cfg)
	assert.Equal(t, &buf, cfg.LogOutput)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)

	WithLogOutput(nil, slog.LevelWarn)(&cfg)
	assert.Equal(t, io.Discard, cfg.LogOutput)
}
