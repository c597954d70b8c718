package lifecycle

import "context"

type Starter interface {
	Start(ctx context.Context) error
}

type Stopper interface {
	Stop(ctx context.Context) error
}

type StartStopper interface {
	Starter
	Stopper
}

// Hooks are the extension points a Component invokes inside its Starting and
// Stopping transitions.
type Hooks interface {
	OnStart(ctx context.Context) error
	OnStop(ctx context.Context) error
}

// Nop is the baseline Hooks implementation. It does nothing.
type Nop struct{}

func (Nop) OnStart(context.Context) error { return nil }

func (Nop) OnStop(context.Context) error { return nil }

// HookFuncs adapts plain functions to Hooks. Nil funcs are no-ops.
type HookFuncs struct {
	Start func(ctx context.Context) error
	Stop  func(ctx context.Context) error
}

func (h HookFuncs) OnStart(ctx context.Context) error {
	if h.Start == nil {
		return nil
	}
	return h.Start(ctx)
}

func (h HookFuncs) OnStop(ctx context.Context) error {
	if h.Stop == nil {
		return nil
	}
	return h.Stop(ctx)
}
