package tui

import (
	"context"

	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/service"
	"github.com/Veraticus/travel-mate/internal/tui/themes"
	"github.com/Veraticus/travel-mate/internal/workspace"
)

// Config holds TUI configuration.
type Config struct {
	Context          context.Context
	Theme            themes.Theme
	Storage          service.Storage
	State            *model.AppState
	Currency         model.Currency
	Sort             engine.SortKey
	WorkspaceOptions []workspace.Option
	Width            int
	Height           int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Context:  context.Background(),
		Theme:    themes.Default,
		Currency: model.DefaultCurrency,
		Sort:     engine.SortByStart,
		Width:    80,
		Height:   24,
	}
}

// WithStorage loads the workspace from storage on start and saves it back.
func WithStorage(storage service.Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithState starts from an already loaded state instead of loading one.
func WithState(state *model.AppState) Option {
	return func(c *Config) {
		c.State = state
	}
}

// WithContext sets the context storage calls run under.
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

// WithDefaultCurrency sets the currency of new expenses and of totals.
func WithDefaultCurrency(currency model.Currency) Option {
	return func(c *Config) {
		c.Currency = currency
	}
}

// WithSort sets the initial sort key.
func WithSort(key engine.SortKey) Option {
	return func(c *Config) {
		c.Sort = key
	}
}

// WithWorkspaceOptions passes options to the workspace the TUI edits.
func WithWorkspaceOptions(opts ...workspace.Option) Option {
	return func(c *Config) {
		c.WorkspaceOptions = append(c.WorkspaceOptions, opts...)
	}
}
