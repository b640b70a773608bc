package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atomicstack/overlaykit/internal/app"
	"github.com/atomicstack/overlaykit/internal/config"
	"github.com/atomicstack/overlaykit/internal/format/table"
	"github.com/atomicstack/overlaykit/internal/keymap"
	"github.com/atomicstack/overlaykit/internal/logging"
	"github.com/atomicstack/overlaykit/internal/logging/events"
)

// configError marks failures that happen before the program starts.
type configError struct{ err error }

func (e configError) Error() string { return "Configuration error: " + e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func main() {
	cmd := newRootCmd(os.Environ())
	err := cmd.ExecuteContext(context.Background())
	logging.Sync()
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, err)
	var cfgErr configError
	if errors.As(err, &cfgErr) {
		os.Exit(2)
	}
	logging.Error(err)
	os.Exit(1)
}

func newRootCmd(environ []string) *cobra.Command {
	root := &cobra.Command{
		Use:           "overlaykit",
		Short:         "Popover, popup menu and context menu playground for the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.BindFlags(root.PersistentFlags(), environ)

	root.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(flags, os.Args[1:])
		if err != nil {
			return err
		}
		logging.Configure(cfg.Logging.FilePath)
		logging.SetTraceEnabled(cfg.Logging.Trace)
		traceStartup(cfg)
		return app.Run(cmd.Context(), cfg.App)
	}

	root.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "Print the effective key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags, os.Args[1:])
			if err != nil {
				return err
			}
			bindings, err := app.BindingTable(cfg.App.KeymapPath)
			if err != nil {
				return configError{err}
			}
			return printBindings(cmd.OutOrStdout(), bindings)
		},
	})
	return root
}

func loadConfig(flags *config.Flags, args []string) (config.Config, error) {
	cfg, err := flags.Config(args)
	if err != nil {
		return config.Config{}, configError{err}
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, configError{err}
	}
	return cfg, nil
}

func printBindings(w io.Writer, bindings *keymap.Table) error {
	rows := [][]string{{"KEYS", "ACTION", "CONTEXT"}}
	for _, b := range bindings.Bindings() {
		scope := b.Context
		if scope == keymap.GlobalContext {
			scope = "global"
		}
		rows = append(rows, []string{b.Chord.String(), string(b.Action), scope})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
