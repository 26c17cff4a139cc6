// Package logging builds the provider logger and the component/operation message
// format shared by the provisioning code.
//
// Every diagnostic line has the form
//
//	<component>.<operation> <message>
//
// and failures append "exception: <error>". The logger is a logr.Logger backed by
// zap, writing to a size-rotated file so long-running hosts do not grow the
// provider log without bound.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/imamik/vpcprov/internal/config"
)

// New returns a logger writing to the configured file. The returned closer
// flushes and closes the file.
func New(cfg config.LogConfig) (logr.Logger, io.Closer, error) {
	if cfg.File == "" {
		return logr.Discard(), closerFunc(func() error { return nil }), fmt.Errorf("log file is not configured")
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	logger := zap.New(newCore(cfg, zapcore.AddSync(rotator)))
	return zapr.NewLogger(logger), closerFunc(func() error {
		_ = logger.Sync()
		return rotator.Close()
	}), nil
}

// NewWriter returns a logger writing to w, used by tests and one-shot commands.
func NewWriter(w io.Writer, verbosity int) logr.Logger {
	cfg := config.LogConfig{Verbosity: verbosity}
	return zapr.NewLogger(zap.New(newCore(cfg, zapcore.AddSync(w))))
}

func newCore(cfg config.LogConfig, sink zapcore.WriteSyncer) zapcore.Core {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	// logr V(n) maps to zap level -n.
	level := zap.NewAtomicLevelAt(zapcore.Level(-cfg.Verbosity))

	core := zapcore.NewCore(encoder, sink, level)
	if cfg.Stderr {
		core = zapcore.NewTee(core, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
	}
	return core
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Component logs on behalf of one named component.
type Component struct {
	name string
	log  logr.Logger
}

// NewComponent returns a Component logging through log.
func NewComponent(log logr.Logger, name string) Component {
	return Component{name: name, log: log}
}

// Logger returns the underlying logger.
func (c Component) Logger() logr.Logger {
	return c.log
}

// Format renders the standard "<component>.<operation> <message>" line.
func (c Component) Format(operation, msg string) string {
	return strings.TrimSpace(fmt.Sprintf("%s.%s %s", c.name, operation, msg))
}

// Info logs an informational message.
func (c Component) Info(operation, msg string, keysAndValues ...any) {
	c.log.Info(c.Format(operation, msg), keysAndValues...)
}

// Debug logs at V(1). Payload dumps go here.
func (c Component) Debug(operation, msg string, keysAndValues ...any) {
	c.log.V(1).Info(c.Format(operation, msg), keysAndValues...)
}

// Warn logs an informational message tagged as a warning.
func (c Component) Warn(operation, msg string, keysAndValues ...any) {
	c.log.Info(c.Format(operation, msg), append([]any{"severity", "warning"}, keysAndValues...)...)
}

// Error logs err with the exception suffix.
func (c Component) Error(operation, msg string, err error) {
	c.log.Error(err, fmt.Sprintf("%s exception: %v", c.Format(operation, msg), err))
}
