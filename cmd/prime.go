package cmd

import (
	"context"
	"fmt"

	"github.com/bronystylecrazy/preventer/log"
	"github.com/bronystylecrazy/preventer/preventer"
	"github.com/bronystylecrazy/preventer/resolver"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type PrimeCommand struct {
	root *Root
}

func NewPrimeCommand(root *Root) *PrimeCommand {
	return &PrimeCommand{root: root}
}

func (s *PrimeCommand) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "prime [preventer...]",
		Short: "Run preventers once and report each result",
		Long: "Run the named preventers, or the configured ones when none are given, " +
			"each under its own resolver, and report every failure. " +
			"With preventer.enabled off only explicitly named preventers run.",
		RunE: s.Run,
	}
}

func (s *PrimeCommand) Run(cmd *cobra.Command, args []string) error {
	v, err := s.root.Viper()
	if err != nil {
		return err
	}
	cfg, err := preventer.NewConfig(v)
	if err != nil {
		return err
	}
	logCfg, err := log.NewConfig(v)
	if err != nil {
		return err
	}
	logger, err := log.NewZapLogger(logCfg, log.NewAtomicLevel(logCfg))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	out := cmd.OutOrStdout()
	names := args
	if len(names) == 0 {
		if !cfg.Enabled {
			fmt.Fprintln(out, "preventers disabled")
			return nil
		}
		names = cfg.Hooks
	}

	cell := preventer.NewCell(cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = resolver.WithCell(ctx, cell)

	var errs error
	for _, name := range names {
		err := s.primeOne(ctx, name, cfg, logger)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			fmt.Fprintf(out, "%s: failed: %v\n", name, err)
			continue
		}
		fmt.Fprintf(out, "%s: primed\n", name)
	}
	fmt.Fprintf(out, "ambient resolver: %s\n", resolver.NameOf(cell.Load()))
	fmt.Fprintf(out, "cell: %s\n", cellKind(cell))
	return errs
}

func (s *PrimeCommand) primeOne(ctx context.Context, name string, cfg preventer.Config, logger *zap.Logger) error {
	hook, err := preventer.Build(name, cfg)
	if err != nil {
		return err
	}
	opts := []preventer.Option{preventer.WithName(name), preventer.WithLogger(logger)}
	if cfg.Resolver != "" {
		opts = append(opts, preventer.WithResolver(resolver.Named(cfg.Resolver)))
	}
	p, err := preventer.New(hook, opts...)
	if err != nil {
		return err
	}
	return p.Start(ctx)
}

func cellKind(cell resolver.Cell) string {
	if _, ok := cell.(*resolver.Shared); ok {
		return "shared"
	}
	return "local"
}
