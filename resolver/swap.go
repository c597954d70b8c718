package resolver

import (
	"context"
	"sync"
)

// heldKey marks a context whose scope already holds the swap window of cell.
type heldKey struct{ cell Cell }

// Swap makes r the ambient resolver of cell and returns a restore func that
// puts the previous value back. Cells implementing sync.Locker are locked for
// the whole window, until restore is called. Restore is safe to call more
// than once; only the first call has an effect.
func Swap(cell Cell, r Resolver) (previous Resolver, restore func()) {
	_, exclusive := cell.(sync.Locker)
	return swap(cell, r, exclusive)
}

// SwapContext is Swap scoped to ctx. The returned context records that its
// scope holds the window of cell, so a nested SwapContext on the same cell
// with that context saves and restores without locking again.
func SwapContext(ctx context.Context, cell Cell, r Resolver) (_ context.Context, previous Resolver, restore func()) {
	_, exclusive := cell.(sync.Locker)
	if exclusive {
		if held, _ := ctx.Value(heldKey{cell}).(bool); held {
			exclusive = false
		} else {
			ctx = context.WithValue(ctx, heldKey{cell}, true)
		}
	}
	previous, restore = swap(cell, r, exclusive)
	return ctx, previous, restore
}

func swap(cell Cell, r Resolver, lock bool) (Resolver, func()) {
	var locker sync.Locker
	if lock {
		locker = cell.(sync.Locker)
		locker.Lock()
	}
	previous := cell.Load()
	cell.Store(r)

	var once sync.Once
	return previous, func() {
		once.Do(func() {
			cell.Store(previous)
			if locker != nil {
				locker.Unlock()
			}
		})
	}
}

// Run calls fn with r ambient on cell. The previous resolver is restored on
// every exit path of fn, including a panic. The error of fn is returned as is.
func Run(cell Cell, r Resolver, fn func() error) error {
	_, restore := Swap(cell, r)
	defer restore()
	return fn()
}
