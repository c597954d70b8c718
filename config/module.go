package config

import (
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

// Module provides the application *viper.Viper loaded from path.
func Module(path string, opts ...Option) fx.Option {
	return fx.Module("config",
		fx.Provide(func() (*viper.Viper, error) {
			return Load(append([]Option{WithFile(path)}, opts...)...)
		}),
	)
}
