package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/atomicstack/overlaykit/internal/app"
	"github.com/atomicstack/overlaykit/internal/keymap"
	"github.com/atomicstack/overlaykit/internal/telemetry"
	"github.com/atomicstack/overlaykit/internal/ui"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envWidth        = "OVERLAYKIT_WIDTH"
	envHeight       = "OVERLAYKIT_HEIGHT"
	envShowFooter   = "OVERLAYKIT_FOOTER"
	envTrace        = "OVERLAYKIT_TRACE"
	envLogFile      = "OVERLAYKIT_LOG_FILE"
	envKeymap       = "OVERLAYKIT_KEYMAP"
	envWindowMode   = "OVERLAYKIT_WINDOW_MODE"
	envClamp        = "OVERLAYKIT_CLAMP"
	envFlipSubmenus = "OVERLAYKIT_FLIP_SUBMENUS"
	envOpenLinks    = "OVERLAYKIT_OPEN_LINKS"

	envOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOTLPInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envServiceName  = "OTEL_SERVICE_NAME"
)

// Flags holds the values bound by BindFlags.
type Flags struct {
	env          map[string]string
	width        *int
	height       *int
	footer       *bool
	trace        *bool
	logFile      *string
	keymap       *string
	windowMode   *bool
	clamp        *bool
	flipSubmenus *bool
	openLinks    *bool
}

// BindFlags registers the application flags on fs. Defaults come from the
// environment so a flag on the command line overrides its variable.
func BindFlags(fs *pflag.FlagSet, environ []string) *Flags {
	env := parseEnv(environ)
	return &Flags{
		env:          env,
		width:        fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)"),
		height:       fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)"),
		footer:       fs.Bool("footer", envOrBool(env, envShowFooter, false), "show the key help row"),
		trace:        fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		logFile:      fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
		keymap:       fs.String("keymap", envOrDefault(env, envKeymap, ""), "TOML or YAML file with key binding overrides"),
		windowMode:   fs.Bool("window-mode", envOrBool(env, envWindowMode, false), "start with popovers docked into the layout"),
		clamp:        fs.Bool("clamp", envOrBool(env, envClamp, true), "shift floating surfaces back inside the window"),
		flipSubmenus: fs.Bool("flip-submenus", envOrBool(env, envFlipSubmenus, true), "open submenus to the left when the right side overflows"),
		openLinks:    fs.Bool("open-links", envOrBool(env, envOpenLinks, false), "open link items in the system browser"),
	}
}

// Config builds the configuration from the parsed flags. args is recorded
// for trace logging.
func (f *Flags) Config(args []string) (Config, error) {
	if *f.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *f.width)
	}
	if *f.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *f.height)
	}

	cfg := Config{
		App: app.Config{
			Width:        *f.width,
			Height:       *f.height,
			ShowFooter:   *f.footer,
			WindowMode:   *f.windowMode,
			OpenLinks:    *f.openLinks,
			KeymapPath:   *f.keymap,
			Clamp:        *f.clamp,
			FlipSubmenus: *f.flipSubmenus,
			Telemetry: telemetry.Config{
				Endpoint:    envOrDefault(f.env, envOTLPEndpoint, ""),
				ServiceName: envOrDefault(f.env, envServiceName, ""),
				Insecure:    envOrBool(f.env, envOTLPInsecure, false),
			},
		},
		Logging: Logging{
			FilePath: *f.logFile,
			Trace:    *f.trace,
		},
		Flags: map[string]string{
			"width":        strconv.Itoa(*f.width),
			"height":       strconv.Itoa(*f.height),
			"footer":       strconv.FormatBool(*f.footer),
			"trace":        strconv.FormatBool(*f.trace),
			"logFile":      *f.logFile,
			"keymap":       *f.keymap,
			"windowMode":   strconv.FormatBool(*f.windowMode),
			"clamp":        strconv.FormatBool(*f.clamp),
			"flipSubmenus": strconv.FormatBool(*f.flipSubmenus),
			"openLinks":    strconv.FormatBool(*f.openLinks),
			"otlpEndpoint": envOrDefault(f.env, envOTLPEndpoint, ""),
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("overlaykit", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flags := BindFlags(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Config(args)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// ErrKeymap wraps problems with the keymap override file.
var ErrKeymap = errors.New("invalid keymap")

// Validate checks the parts of the configuration that can fail before the
// program starts: the keymap file must exist and only bind known actions.
func Validate(cfg Config) error {
	if cfg.App.KeymapPath == "" {
		return nil
	}
	if _, err := keymap.LoadFile(cfg.App.KeymapPath, ui.KnownActions()); err != nil {
		return fmt.Errorf("%w: %w", ErrKeymap, err)
	}
	return nil
}
