// Package applog is the one place this repository builds a *zap.Logger.
// It never writes to stdout: the REPL's stdout output is a strict
// contract (see internal/repl), and mixing structured log lines into it
// would break that contract. Diagnostics go to stderr instead.
package applog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnvVar is the environment variable that tunes the diagnostic
// stream's verbosity. It has no effect on REPL output.
const LevelEnvVar = "TINYBASE_LOG_LEVEL"

// New builds the process logger. It reads LevelEnvVar ("debug", "info",
// "warn", "error"); an unset or unrecognized value defaults to "info".
func New() *zap.Logger {
	level := parseLevel(os.Getenv(LevelEnvVar))

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
