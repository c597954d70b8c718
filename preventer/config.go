package preventer

import (
	"github.com/bronystylecrazy/preventer/config"
	"github.com/bronystylecrazy/preventer/lifecycle"
	"github.com/spf13/viper"
)

const ConfigName = "preventer"

type Config struct {
	Enabled       bool                    `mapstructure:"enabled"`
	Resolver      string                  `mapstructure:"resolver"`
	HostResolver  string                  `mapstructure:"host_resolver"`
	Shared        bool                    `mapstructure:"shared"`
	Hooks         []string                `mapstructure:"hooks"`
	TimeZones     []string                `mapstructure:"time_zones"`
	StartPriority lifecycle.PriorityLevel `mapstructure:"start_priority"`
	StopPriority  lifecycle.PriorityLevel `mapstructure:"stop_priority"`
}

// DefaultHooks are primed when the configuration names none.
var DefaultHooks = []string{"certpool", "mime", "timezones"}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(ConfigName+".enabled", true)
	v.SetDefault(ConfigName+".shared", true)
	v.SetDefault(ConfigName+".host_resolver", "host")
	v.SetDefault(ConfigName+".hooks", DefaultHooks)
	v.SetDefault(ConfigName+".time_zones", []string{"UTC"})
	v.SetDefault(ConfigName+".start_priority", int64(lifecycle.Earliest))
	v.SetDefault(ConfigName+".stop_priority", int64(lifecycle.Latest))
}

func NewConfig(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	var cfg Config
	if err := config.Decode(v, ConfigName, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
