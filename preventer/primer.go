package preventer

import (
	"context"
	"errors"

	"github.com/bronystylecrazy/preventer/lifecycle"
	"github.com/bronystylecrazy/preventer/resolver"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

var ErrNilPreventer = errors.New("preventer: nil preventer")

const (
	stagePrevent = "prevent"
	stageBase    = "base"
)

// Primer is a lifecycle component whose start transition runs a Preventer
// with the primer's own resolver ambient.
type Primer struct {
	*lifecycle.Component

	hook          Preventer
	own           resolver.Resolver
	base          lifecycle.Hooks
	cell          resolver.Cell
	logger        *zap.Logger
	tracer        trace.Tracer
	startPriority lifecycle.PriorityLevel
	stopPriority  lifecycle.PriorityLevel
}

type settings struct {
	name          string
	own           resolver.Resolver
	base          lifecycle.Hooks
	cell          resolver.Cell
	logger        *zap.Logger
	tracer        trace.Tracer
	startPriority lifecycle.PriorityLevel
	stopPriority  lifecycle.PriorityLevel
}

type Option func(*settings)

// WithName overrides the component name used in logs and errors.
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithResolver overrides the primer's own resolver. By default it is the
// resolver of the package defining the preventer's type.
func WithResolver(r resolver.Resolver) Option {
	return func(s *settings) {
		if r != nil {
			s.own = r
		}
	}
}

// WithBase sets the baseline hooks run after the swap window closes on start,
// and on stop.
func WithBase(base lifecycle.Hooks) Option {
	return func(s *settings) {
		if base != nil {
			s.base = base
		}
	}
}

// WithCell sets the cell used when the start context carries none. Without it
// the process-wide cell is used.
func WithCell(cell resolver.Cell) Option {
	return func(s *settings) { s.cell = cell }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *settings) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithPriority sets the order in which fx registers the primer's start and
// stop hooks.
func WithPriority(start, stop lifecycle.PriorityLevel) Option {
	return func(s *settings) {
		s.startPriority = start
		s.stopPriority = stop
	}
}

// New returns an Idle Primer running hook.
func New(hook Preventer, opts ...Option) (*Primer, error) {
	if hook == nil {
		return nil, ErrNilPreventer
	}
	s := settings{
		own:           resolver.Of(hook),
		base:          lifecycle.Nop{},
		logger:        zap.NewNop(),
		tracer:        noop.NewTracerProvider().Tracer(""),
		startPriority: lifecycle.Earliest,
		stopPriority:  lifecycle.Latest,
	}
	if n, ok := hook.(Namer); ok {
		s.name = n.Name()
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.name == "" {
		s.name = s.own.Name()
	}

	p := &Primer{
		hook:          hook,
		own:           s.own,
		base:          s.base,
		cell:          s.cell,
		logger:        s.logger.With(zap.String("primer", s.name)),
		tracer:        s.tracer,
		startPriority: s.startPriority,
		stopPriority:  s.stopPriority,
	}
	p.Component = lifecycle.NewComponent(s.name, primerHooks{p: p}, lifecycle.WithLogger(p.logger))
	return p, nil
}

// Resolver returns the resolver made ambient while the preventer runs.
func (p *Primer) Resolver() resolver.Resolver { return p.own }

func (p *Primer) StartPriority() lifecycle.PriorityLevel { return p.startPriority }

func (p *Primer) StopPriority() lifecycle.PriorityLevel { return p.stopPriority }

func (p *Primer) cellFor(ctx context.Context) resolver.Cell {
	if cell, ok := resolver.FromContext(ctx); ok {
		return cell
	}
	if p.cell != nil {
		return p.cell
	}
	return resolver.Default()
}

// prime runs the preventer inside the swap window. The previous resolver is
// back in place when prime returns or panics. A primer started from inside
// another primer's preventer, with its context, nests in the open window.
func (p *Primer) prime(ctx context.Context) error {
	cell := p.cellFor(ctx)
	ctx = resolver.WithCell(ctx, cell)

	ctx, span := p.tracer.Start(ctx, "preventer.prevent", trace.WithAttributes(
		attribute.String("preventer.name", p.Name()),
		attribute.String("preventer.resolver", p.own.Name()),
	))
	defer span.End()

	ctx, previous, restore := resolver.SwapContext(ctx, cell, p.own)
	defer restore()

	span.SetAttributes(attribute.String("preventer.previous", resolver.NameOf(previous)))
	p.logger.Debug("ambient resolver swapped",
		zap.String("previous", resolver.NameOf(previous)),
		zap.String("own", p.own.Name()),
	)

	if err := p.hook.Prevent(ctx, p.own); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

type primerHooks struct {
	p *Primer
}

func (h primerHooks) OnStart(ctx context.Context) error {
	p := h.p
	if err := p.prime(ctx); err != nil {
		p.logger.Error("preventer failed", zap.String("stage", stagePrevent), zap.Error(err))
		return err
	}
	if err := p.base.OnStart(ctx); err != nil {
		p.logger.Error("preventer failed", zap.String("stage", stageBase), zap.Error(err))
		return err
	}
	p.logger.Info("preventer primed", zap.String("resolver", p.own.Name()))
	return nil
}

func (h primerHooks) OnStop(ctx context.Context) error {
	return h.p.base.OnStop(ctx)
}
