package cmd

import (
	"fmt"

	"github.com/bronystylecrazy/preventer/build"
	"github.com/bronystylecrazy/preventer/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Root struct {
	*cobra.Command

	configFile string
}

// New returns the root command with every subcommand registered.
func New() *Root {
	r := &Root{
		Command: &cobra.Command{
			Use:           build.Name,
			Short:         "Prime process-wide state under a controlled resolver",
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}
	r.PersistentFlags().StringVarP(&r.configFile, "config", "c", config.DefaultFile, "config file path")
	r.Register(
		NewRunCommand(r),
		NewPrimeCommand(r),
		NewListCommand(),
		NewVersionCommand(),
	)
	return r
}

func (r *Root) Register(commands ...Commander) {
	for _, c := range commands {
		r.AddCommand(c.Command())
	}
}

// Viper loads the configuration selected by --config.
func (r *Root) Viper() (*viper.Viper, error) {
	v, err := config.Load(config.WithFile(r.configFile), config.WithEnvPrefix("PREVENTER"))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return v, nil
}
