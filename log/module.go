package log

import (
	"github.com/bronystylecrazy/preventer/config"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := config.Decode(v, ConfigName, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WatchLevel applies log.level changes from the config file to level.
func WatchLevel(v *viper.Viper, level zap.AtomicLevel, logger *zap.Logger) {
	config.Watch(v, func(v *viper.Viper, e fsnotify.Event) {
		cfg, err := NewConfig(v)
		if err != nil {
			logger.Warn("log config reload failed", zap.String("file", e.Name), zap.Error(err))
			return
		}
		next := ParseLevel(cfg.Level)
		if next == level.Level() {
			return
		}
		level.SetLevel(next)
		logger.Info("log level changed", zap.Stringer("level", next))
	})
}

// Module provides *zap.Logger from the "log" config section and routes fx
// events through it. It needs a *viper.Viper.
func Module() fx.Option {
	return fx.Options(
		fx.WithLogger(NewEventLogger),
		fx.Module(ConfigName,
			fx.Provide(NewConfig, NewAtomicLevel, NewZapLogger),
			fx.Invoke(WatchLevel),
		),
	)
}
