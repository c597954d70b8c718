package otel

import (
	"github.com/bronystylecrazy/preventer/config"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

func NewConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := config.Decode(v, ConfigName, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Module provides a trace.TracerProvider from the "otel" config section.
func Module() fx.Option {
	return fx.Module(ConfigName,
		fx.Provide(NewConfig, NewTracerProvider),
	)
}
