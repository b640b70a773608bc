package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "overlaykit.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogPath()
	base         *zap.Logger
	sink         *os.File
)

func defaultLogPath() string {
	return filepath.Join(os.TempDir(), logFileName)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "event"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// current returns the shared logger, opening the log file on first use.
// Callers must hold mu.
func current() *zap.Logger {
	if base != nil {
		return base
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		base = zap.NewNop()
		return base
	}
	sink = f
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(f)),
		zap.NewAtomicLevelAt(zapcore.DebugLevel),
	)
	base = zap.New(core)
	return base
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	current().Error("error", zap.Error(err))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are currently written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return
	}
	if payload == nil {
		current().Debug(event)
		return
	}
	current().Debug(event, zap.Any("payload", payload))
}

// Logger exposes the shared zap core as a logr.Logger for packages that take
// an injected logger. The log file is not opened until the first entry is
// written.
func Logger() logr.Logger {
	return logr.New(&lazySink{})
}

// lazySink defers opening the shared core until an entry is emitted. Names
// and values are recorded and applied once the core exists.
type lazySink struct {
	names  []string
	values []interface{}
}

func (s *lazySink) resolve() logr.LogSink {
	mu.Lock()
	l := zapr.NewLogger(current())
	mu.Unlock()
	for _, name := range s.names {
		l = l.WithName(name)
	}
	if len(s.values) > 0 {
		l = l.WithValues(s.values...)
	}
	return l.GetSink()
}

func (s *lazySink) Init(logr.RuntimeInfo) {}

func (s *lazySink) Enabled(level int) bool {
	return s.resolve().Enabled(level)
}

func (s *lazySink) Info(level int, msg string, keysAndValues ...interface{}) {
	s.resolve().Info(level, msg, keysAndValues...)
}

func (s *lazySink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.resolve().Error(err, msg, keysAndValues...)
}

func (s *lazySink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	next := &lazySink{names: s.names}
	next.values = append(append([]interface{}(nil), s.values...), keysAndValues...)
	return next
}

func (s *lazySink) WithName(name string) logr.LogSink {
	next := &lazySink{values: s.values}
	next.names = append(append([]string(nil), s.names...), name)
	return next
}

// Sync flushes buffered entries to the log file.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if base != nil {
		_ = base.Sync()
	}
}

// Configure sets the log destination. Empty values fall back to
// overlaykit.log in the temp directory. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	reset()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogPath()
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogPath()
		return
	}
	logPath = path
}

func reset() {
	if base != nil {
		_ = base.Sync()
		base = nil
	}
	if sink != nil {
		_ = sink.Close()
		sink = nil
	}
}
