package lifecycle

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Component is a start/stop state machine around a set of Hooks.
//
//	Idle -> Starting -> Started -> Stopping -> Stopped
//	          |                       |
//	          +-------> Failed <------+
//
// The state lock is not held while hooks run, so hooks may inspect State.
type Component struct {
	name      string
	hooks     Hooks
	logger    *zap.Logger
	listeners []func(Transition)

	mu    sync.Mutex
	state State
}

type Option func(*Component)

// WithLogger logs every transition at debug level, failures at error level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Component) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithListener registers fn to observe every transition. Listeners run
// synchronously on the goroutine driving the transition.
func WithListener(fn func(Transition)) Option {
	return func(c *Component) {
		if fn != nil {
			c.listeners = append(c.listeners, fn)
		}
	}
}

// NewComponent returns an Idle component. A nil hooks value behaves as Nop.
func NewComponent(name string, hooks Hooks, opts ...Option) *Component {
	if hooks == nil {
		hooks = Nop{}
	}
	c := &Component{
		name:   name,
		hooks:  hooks,
		logger: zap.NewNop(),
		state:  Idle,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Component) Name() string { return c.name }

func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Component) IsRunning() bool {
	return c.State() == Started
}

// Start moves the component from Idle to Started through OnStart. An error
// from OnStart leaves the component Failed and is returned unchanged.
func (c *Component) Start(ctx context.Context) error {
	return c.run(ctx, "start", Idle, Starting, Started, c.hooks.OnStart)
}

// Stop moves the component from Started to Stopped through OnStop. An error
// from OnStop leaves the component Failed and is returned unchanged.
func (c *Component) Stop(ctx context.Context) error {
	return c.run(ctx, "stop", Started, Stopping, Stopped, c.hooks.OnStop)
}

func (c *Component) run(ctx context.Context, op string, from, during, to State, hook func(context.Context) error) error {
	if err := c.enter(op, from, during); err != nil {
		return err
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		r := recover()
		c.transition(during, Failed, nil)
		if r != nil {
			panic(r)
		}
	}()

	err := hook(ctx)
	finished = true
	if err != nil {
		c.transition(during, Failed, err)
		return err
	}
	c.transition(during, to, nil)
	return nil
}

func (c *Component) enter(op string, from, during State) error {
	c.mu.Lock()
	current := c.state
	if current != from {
		c.mu.Unlock()
		err := &IllegalStateError{Component: c.name, Op: op, State: current}
		c.logger.Warn("lifecycle call rejected",
			zap.String("component", c.name),
			zap.String("op", op),
			zap.Stringer("state", current),
		)
		return err
	}
	c.state = during
	c.mu.Unlock()
	c.notify(Transition{Component: c.name, From: from, To: during})
	return nil
}

func (c *Component) transition(from, to State, err error) {
	c.mu.Lock()
	c.state = to
	c.mu.Unlock()
	c.notify(Transition{Component: c.name, From: from, To: to, Err: err})
}

func (c *Component) notify(t Transition) {
	if t.To == Failed {
		c.logger.Error("lifecycle transition failed",
			zap.String("component", t.Component),
			zap.Stringer("from", t.From),
			zap.Error(t.Err),
		)
	} else {
		c.logger.Debug("lifecycle transition",
			zap.String("component", t.Component),
			zap.Stringer("from", t.From),
			zap.Stringer("to", t.To),
		)
	}
	for _, fn := range c.listeners {
		fn(t)
	}
}
