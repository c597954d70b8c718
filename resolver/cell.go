package resolver

import (
	"context"
	"sync"
	"sync/atomic"
)

// Cell is the ambient resolver slot of an execution scope. Store never fails.
type Cell interface {
	Load() Resolver
	Store(Resolver)
}

// Local is a cell confined to a single goroutine. It carries no
// synchronization; each execution scope owns its own Local.
type Local struct {
	current Resolver
}

// NewLocal returns a Local holding initial.
func NewLocal(initial Resolver) *Local {
	return &Local{current: initial}
}

func (l *Local) Load() Resolver { return l.current }

func (l *Local) Store(r Resolver) { l.current = r }

type holder struct {
	r Resolver
}

// Shared is a process-wide cell. Load and Store are safe for concurrent use,
// and Swap serializes whole swap windows through Lock/Unlock so concurrent
// swaps cannot overwrite each other's saved value. The window lock is not
// reentrant.
type Shared struct {
	window  sync.Mutex
	current atomic.Pointer[holder]
}

// NewShared returns a Shared holding initial.
func NewShared(initial Resolver) *Shared {
	s := &Shared{}
	s.Store(initial)
	return s
}

func (s *Shared) Load() Resolver {
	h := s.current.Load()
	if h == nil {
		return nil
	}
	return h.r
}

func (s *Shared) Store(r Resolver) { s.current.Store(&holder{r: r}) }

// Lock acquires the swap window.
func (s *Shared) Lock() { s.window.Lock() }

// Unlock releases the swap window.
func (s *Shared) Unlock() { s.window.Unlock() }

var process = NewShared(nil)

// Default returns the process-wide cell used when no cell is bound to a
// context.
func Default() *Shared {
	return process
}

type cellKey struct{}

// WithCell binds cell to ctx as the ambient slot for code running under ctx.
func WithCell(ctx context.Context, cell Cell) context.Context {
	if cell == nil {
		return ctx
	}
	return context.WithValue(ctx, cellKey{}, cell)
}

// FromContext returns the cell bound to ctx, if any.
func FromContext(ctx context.Context) (Cell, bool) {
	if ctx == nil {
		return nil, false
	}
	cell, ok := ctx.Value(cellKey{}).(Cell)
	return cell, ok
}

// CellFrom returns the cell bound to ctx or the process-wide cell.
func CellFrom(ctx context.Context) Cell {
	if cell, ok := FromContext(ctx); ok {
		return cell
	}
	return process
}

// Current returns the ambient resolver for ctx.
func Current(ctx context.Context) Resolver {
	return CellFrom(ctx).Load()
}
