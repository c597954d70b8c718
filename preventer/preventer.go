// Package preventer runs priming hooks under a controlled ambient resolver.
//
// A Primer is a lifecycle component. Starting it swaps the ambient resolver
// of the calling scope to the primer's own resolver, runs its Preventer, and
// restores the previous resolver on every exit path before the baseline start
// bookkeeping runs. Preventers force eager initialization of lazily built
// global state so that it binds to a known resolver instead of whichever one
// happens to be ambient when it is first touched.
package preventer

import (
	"context"

	"github.com/bronystylecrazy/preventer/resolver"
)

// Preventer primes global state. target is the resolver that is ambient for
// the duration of the call; it is never nil.
type Preventer interface {
	Prevent(ctx context.Context, target resolver.Resolver) error
}

// Func adapts a function to Preventer.
type Func func(ctx context.Context, target resolver.Resolver) error

func (f Func) Prevent(ctx context.Context, target resolver.Resolver) error {
	return f(ctx, target)
}

// Namer is implemented by preventers that carry their own name.
type Namer interface {
	Name() string
}
