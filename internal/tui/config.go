package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/Veraticus/intake/internal/admin"
	"github.com/Veraticus/intake/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Context   context.Context
	Theme     themes.Theme
	Service   *admin.Service
	LogOutput io.Writer // receives slog records while the console runs
	LogLevel  slog.Level
	Width     int
	Height    int
	ShowHelp  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Context:   context.Background(),
		Theme:     themes.Default,
		LogOutput: io.Discard,
		LogLevel:  slog.LevelInfo,
		Width:     100,
		Height:    30,
		ShowHelp:  true,
	}
}

// WithService sets the admin service the console drives.
func WithService(svc *admin.Service) Option {
	return func(c *Config) {
		c.Service = svc
	}
}

// WithContext sets the parent context for store calls.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

// WithLogOutput sends log records at or above level to w while the console
// runs. The default discards them.
func WithLogOutput(w io.Writer, level slog.Level) Option {
	return func(c *Config) {
		if w == nil {
			w = io.Discard
		}
		c.LogOutput = w
		c.LogLevel = level
	}
}
