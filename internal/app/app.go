package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/atomicstack/overlaykit/internal/anchor"
	"github.com/atomicstack/overlaykit/internal/keymap"
	"github.com/atomicstack/overlaykit/internal/logging"
	"github.com/atomicstack/overlaykit/internal/logging/events"
	"github.com/atomicstack/overlaykit/internal/telemetry"
	"github.com/atomicstack/overlaykit/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Width        int
	Height       int
	ShowFooter   bool
	WindowMode   bool
	OpenLinks    bool
	KeymapPath   string
	Clamp        bool
	FlipSubmenus bool
	Telemetry    telemetry.Config
}

// Policy returns the overflow policy selected by cfg.
func (c Config) Policy() anchor.Policy {
	return anchor.Policy{Clamp: c.Clamp, FlipSubmenus: c.FlipSubmenus}
}

// BindingTable builds the effective key bindings: the defaults followed by
// the overrides in the keymap file, if any.
func BindingTable(path string) (*keymap.Table, error) {
	var overrides []keymap.Spec
	if path != "" {
		specs, err := keymap.LoadFile(path, ui.KnownActions())
		if err != nil {
			return nil, err
		}
		events.Keymap.Loaded(path, len(specs))
		overrides = specs
	}
	table, err := ui.NewBindingTable(overrides)
	if err != nil {
		return nil, fmt.Errorf("bind keys: %w", err)
	}
	return table, nil
}

// NewModel builds the UI model for cfg.
func NewModel(cfg Config) (*ui.Model, error) {
	table, err := BindingTable(cfg.KeymapPath)
	if err != nil {
		return nil, err
	}
	policy := cfg.Policy()
	return ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		WindowMode: cfg.WindowMode,
		OpenLinks:  cfg.OpenLinks,
		Bindings:   table,
		Policy:     &policy,
		Logger:     logging.Logger().WithName("ui"),
	}), nil
}

// Run bootstraps and executes the Bubble Tea program.
func Run(ctx context.Context, cfg Config) (err error) {
	provider, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		if shutdownErr := provider.Shutdown(context.Background()); shutdownErr != nil && err == nil {
			err = fmt.Errorf("telemetry shutdown: %w", shutdownErr)
		}
	}()

	model, err := NewModel(cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithContext(ctx))
	_, err = program.Run()
	events.App.Stop(err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
