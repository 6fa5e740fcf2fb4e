package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/intake/internal/common"
)

// New builds the console model from opts.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Service == nil {
		return Model{}, fmt.Errorf("service is required")
	}
	return newModel(cfg), nil
}

// Run starts the console and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts ...Option) error {
	opts = append(opts, WithContext(ctx))
	m, err := New(opts...)
	if err != nil {
		return err
	}

	restore := redirectLogging(m.config.LogOutput, m.config.LogLevel)
	defer restore()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}

// redirectLogging points the default slog logger at w so store logs do not
// draw over the alt screen. The returned func reinstates the previous logger.
func redirectLogging(w io.Writer, level slog.Level) func() {
	prev := slog.Default()

	logger, err := common.NewLogger(w, level, "console")
	if err != nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	slog.SetDefault(logger)

	return func() { slog.SetDefault(prev) }
}
