// Package logger builds the application's zap logger. Production mode emits
// JSON to stdout; setting LOG_DEV=1 switches to the human-readable
// development encoder.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New initializes and returns a *zap.Logger based on LOG_LEVEL and LOG_DEV.
func New() (*zap.Logger, error) {
	dev := os.Getenv("LOG_DEV") == "1"
	lvl := levelFromString(os.Getenv("LOG_LEVEL"), dev)

	if dev {
		c := zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(lvl)
		return c.Build()
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(os.Stdout), lvl)
	opts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	return zap.New(core, opts...), nil
}

func levelFromString(l string, dev bool) zapcore.Level {
	switch l {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "":
		if dev {
			return zapcore.DebugLevel
		}
		return zapcore.InfoLevel
	default:
		return zapcore.InfoLevel
	}
}
