package log

import (
	"strings"
	"time"

	"github.com/bronystylecrazy/preventer/build"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const ConfigName = "log"

type Config struct {
	Level      string   `mapstructure:"level"`
	DropFields []string `mapstructure:"drop_fields"`
}

// ParseLevel maps a configured level name to a zap level. Unknown names fall
// back to debug in development builds and info otherwise.
func ParseLevel(name string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	}
	if build.IsDevelopment() {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func NewAtomicLevel(cfg Config) zap.AtomicLevel {
	return zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
}

func NewZapLogger(cfg Config, level zap.AtomicLevel) (*zap.Logger, error) {
	zapConfig := zap.NewDevelopmentConfig()
	if build.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.Level = level

	// zap samples inside any WrapCore option, so sampling is rebuilt around
	// the field filter instead.
	sampling := zapConfig.Sampling
	zapConfig.Sampling = nil
	return zapConfig.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return wrapCore(core, cfg.DropFields, sampling)
	}))
}

// wrapCore drops the configured fields from core, then samples the result.
func wrapCore(core zapcore.Core, dropFields []string, sampling *zap.SamplingConfig) zapcore.Core {
	core = DropFields(core, dropFields...)
	if sampling == nil {
		return core
	}
	var opts []zapcore.SamplerOption
	if sampling.Hook != nil {
		opts = append(opts, zapcore.SamplerHook(sampling.Hook))
	}
	return zapcore.NewSamplerWithOptions(core, time.Second, sampling.Initial, sampling.Thereafter, opts...)
}

func NewEventLogger(log *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: log}
}
