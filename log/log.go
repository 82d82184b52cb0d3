// Package log exposes package-level structured logging for the whole
// service, backed by zap. Handlers and storage code use the *w variants
// with alternating key/value pairs.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base = zap.NewNop().Sugar()

// Init configures the global logger with the given level ("debug", "info",
// "warn" or "error") and output ("stdout", "stderr" or a file path).
func Init(level, output string) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Development = true
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
	base = logger.Sugar()
}

// Level returns the currently configured log level name.
func Level() string {
	return base.Level().String()
}

func Debugf(template string, args ...any) { base.Debugf(template, args...) }
func Infof(template string, args ...any)  { base.Infof(template, args...) }
func Warnf(template string, args ...any)  { base.Warnf(template, args...) }
func Errorf(template string, args ...any) { base.Errorf(template, args...) }
func Fatalf(template string, args ...any) { base.Fatalf(template, args...) }

func Debug(args ...any) { base.Debug(args...) }
func Info(args ...any)  { base.Info(args...) }
func Warn(args ...any)  { base.Warn(args...) }
func Error(args ...any) { base.Error(args...) }
func Fatal(args ...any) { base.Fatal(args...) }

func Debugw(msg string, keysAndValues ...any) { base.Debugw(msg, keysAndValues...) }
func Infow(msg string, keysAndValues ...any)  { base.Infow(msg, keysAndValues...) }
func Warnw(msg string, keysAndValues ...any)  { base.Warnw(msg, keysAndValues...) }
func Errorw(msg string, keysAndValues ...any) { base.Errorw(msg, keysAndValues...) }
