package preventer

import (
	"github.com/bronystylecrazy/preventer/lifecycle"
	"github.com/bronystylecrazy/preventer/resolver"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const tracerName = "github.com/bronystylecrazy/preventer"

// NewCell returns the ambient cell the configured primers swap on, with the
// host resolver installed. A shared cell is owned by the app; the process
// cell from resolver.Default is left alone.
func NewCell(cfg Config) resolver.Cell {
	var host resolver.Resolver
	if cfg.HostResolver != "" {
		host = resolver.Named(cfg.HostResolver)
	}
	if !cfg.Shared {
		return resolver.NewLocal(host)
	}
	return resolver.NewShared(host)
}

type PrimersParams struct {
	fx.In

	Config         Config
	Cell           resolver.Cell
	Logger         *zap.Logger
	TracerProvider trace.TracerProvider `optional:"true"`
}

// NewPrimers builds one Primer per configured hook. Every unknown or failing
// hook is reported.
func NewPrimers(params PrimersParams) ([]*Primer, error) {
	cfg := params.Config
	if !cfg.Enabled {
		return nil, nil
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []Option{
		WithCell(params.Cell),
		WithLogger(logger.Named("preventer")),
		WithPriority(cfg.StartPriority, cfg.StopPriority),
	}
	if params.TracerProvider != nil {
		opts = append(opts, WithTracer(params.TracerProvider.Tracer(tracerName)))
	}
	if cfg.Resolver != "" {
		opts = append(opts, WithResolver(resolver.Named(cfg.Resolver)))
	}

	names := cfg.Hooks
	if len(names) == 0 {
		names = DefaultHooks
	}

	var errs error
	primers := make([]*Primer, 0, len(names))
	for _, name := range names {
		hook, err := Build(name, cfg)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		p, err := New(hook, append(opts, WithName(name))...)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		primers = append(primers, p)
	}
	if errs != nil {
		return nil, errs
	}
	return primers, nil
}

// RegisterPrimers appends every primer to the fx lifecycle.
func RegisterPrimers(lc fx.Lifecycle, primers []*Primer) {
	starters := make([]lifecycle.Starter, len(primers))
	stoppers := make([]lifecycle.Stopper, len(primers))
	for i, p := range primers {
		starters[i] = p
		stoppers[i] = p
	}
	lifecycle.AppendStarters(lc, starters...)
	lifecycle.AppendStoppers(lc, stoppers...)
}

// Module wires configured primers into the fx lifecycle. It needs a
// *viper.Viper and a *zap.Logger.
func Module() fx.Option {
	return fx.Module(ConfigName,
		fx.Provide(NewConfig, NewCell, NewPrimers),
		fx.Invoke(RegisterPrimers),
	)
}
