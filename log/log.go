// Package log provides utility functions for logging to the console.
//
// All output goes to stderr so that command results written to stdout stay
// machine readable.
package log

import (
	"github.com/pkg/errors"
	"github.com/runonflux/fluxsign/process"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
	logger *zap.Logger
	sugar  *zap.SugaredLogger
)

// Debugf uses fmt.Sprintf to log a formatted string.
func Debugf(format string, args ...interface{}) {
	sugar.Debugf(format, args...)
}

// Fatalf uses fmt.Sprintf to log a formatted string, and then calls
// process.Exit.
func Fatalf(format string, args ...interface{}) {
	sugar.Errorf(format, args...)
	process.Exit(1)
}

// Info logs an info message with any optional fields.
func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

// SetLevel changes the minimum level of messages that get logged. The level
// is one of debug, info, warn or error.
func SetLevel(name string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return errors.Wrapf(err, "invalid log level %q", name)
	}
	level.SetLevel(l)
	return nil
}

// Warnf uses fmt.Sprintf to log a formatted string.
func Warnf(format string, args ...interface{}) {
	sugar.Warnf(format, args...)
}

func init() {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg := zap.Config{
		DisableCaller:     true,
		DisableStacktrace: true,
		EncoderConfig:     enc,
		Encoding:          "console",
		ErrorOutputPaths:  []string{"stderr"},
		Level:             level,
		OutputPaths:       []string{"stderr"},
	}
	var err error
	logger, err = cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	sugar = logger.Sugar()
	zap.RedirectStdLog(logger)
	process.SetExitHandler(func() {
		/* #nosec G104 -- syncing stderr can fail on some platforms */
		logger.Sync()
	})
}
