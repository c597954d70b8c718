package cmd

import (
	"context"

	"github.com/bronystylecrazy/preventer/lifecycle"
	"github.com/bronystylecrazy/preventer/log"
	"github.com/bronystylecrazy/preventer/otel"
	"github.com/bronystylecrazy/preventer/preventer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type RunCommand struct {
	root *Root
	once bool
}

func NewRunCommand(root *Root) *RunCommand {
	return &RunCommand{root: root}
}

func (s *RunCommand) Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Start the configured primers and wait for a shutdown signal",
		Args:  cobra.NoArgs,
		RunE:  s.Run,
	}
	c.Flags().BoolVar(&s.once, "once", false, "stop right after a successful start")
	return c
}

// NewApp assembles the fx application around v.
func NewApp(v *viper.Viper, extra ...fx.Option) *fx.App {
	return fx.New(
		fx.Supply(v),
		log.Module(),
		otel.Module(),
		lifecycle.Module(),
		preventer.Module(),
		fx.Options(extra...),
	)
}

func (s *RunCommand) Run(cmd *cobra.Command, args []string) error {
	v, err := s.root.Viper()
	if err != nil {
		return err
	}
	app := NewApp(v)
	if err := app.Err(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	if !s.once {
		select {
		case <-ctx.Done():
		case <-app.Wait():
		}
	}

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancelStop()
	return app.Stop(stopCtx)
}
