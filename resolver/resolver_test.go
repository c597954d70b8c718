package resolver

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marker struct{}

func TestOfUsesDefiningPackage(t *testing.T) {
	assert.Equal(t, "github.com/bronystylecrazy/preventer/resolver", Of(&marker{}).Name())
	assert.Equal(t, "github.com/bronystylecrazy/preventer/resolver", Of(marker{}).Name())
	assert.Equal(t, "builtin", Of(nil).Name())
	assert.Equal(t, Of(&marker{}), Of(marker{}))
}

func TestNamedEquality(t *testing.T) {
	assert.Equal(t, Named("host"), Named(" host "))
	assert.NotEqual(t, Named("host"), Named("app"))
	assert.Equal(t, "<nil>", NameOf(nil))
	assert.Equal(t, "host", NameOf(Named("host")))
}

func TestSwapRestores(t *testing.T) {
	r0 := Named("r0")
	own := Named("own")
	cell := NewLocal(r0)

	previous, restore := Swap(cell, own)
	assert.Equal(t, r0, previous)
	assert.Equal(t, own, cell.Load())

	restore()
	assert.Equal(t, r0, cell.Load())

	cell.Store(Named("later"))
	restore()
	assert.Equal(t, Named("later"), cell.Load(), "second restore must be a no-op")
}

func TestRunRestoresOnError(t *testing.T) {
	r0 := Named("r0")
	own := Named("own")
	cell := NewLocal(r0)
	boom := errors.New("boom")

	var seen Resolver
	err := Run(cell, own, func() error {
		seen = cell.Load()
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Same(t, boom, err)
	assert.Equal(t, own, seen)
	assert.Equal(t, r0, cell.Load())
}

func TestRunRestoresOnPanic(t *testing.T) {
	r0 := Named("r0")
	cell := NewShared(r0)

	assert.Panics(t, func() {
		_ = Run(cell, Named("own"), func() error { panic("boom") })
	})
	assert.Equal(t, r0, cell.Load())

	// window must have been released
	done := make(chan struct{})
	go func() {
		cell.Lock()
		cell.Unlock()
		close(done)
	}()
	<-done
}

func TestRunRestoresNilPrevious(t *testing.T) {
	cell := &Local{}
	require.NoError(t, Run(cell, Named("own"), func() error { return nil }))
	assert.Nil(t, cell.Load())
}

func TestSharedSerializesWindows(t *testing.T) {
	r0 := Named("r0")
	cell := NewShared(r0)

	const workers = 32
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			own := Named(string(rune('a' + i%26)))
			errs <- Run(cell, own, func() error {
				if got := cell.Load(); got != own {
					return errors.New("window observed foreign resolver " + NameOf(got))
				}
				return nil
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, r0, cell.Load())
}

func TestLocalCellsAreIndependent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			base := Named("base")
			cell := NewLocal(base)
			own := Named(string(rune('a' + i)))
			err := Run(cell, own, func() error {
				if cell.Load() != own {
					return errors.New("unexpected resolver")
				}
				return nil
			})
			assert.NoError(t, err)
			assert.Equal(t, base, cell.Load())
		}(i)
	}
	wg.Wait()
}

func TestContextCarrier(t *testing.T) {
	ctx := context.Background()
	_, ok := FromContext(ctx)
	assert.False(t, ok)
	assert.Same(t, Default(), CellFrom(ctx))

	cell := NewLocal(Named("bound"))
	ctx = WithCell(ctx, cell)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, cell, got)
	assert.Equal(t, Named("bound"), Current(ctx))

	assert.Equal(t, ctx, WithCell(ctx, nil))
}

func TestSwapContextNestsOnSharedCell(t *testing.T) {
	outer, inner := Named("outer"), Named("inner")
	cell := NewShared(Named("r0"))

	done := make(chan []Resolver, 1)
	go func() {
		ctx, prev, restore := SwapContext(context.Background(), cell, outer)
		seen := []Resolver{prev, cell.Load()}

		_, prev, restoreInner := SwapContext(ctx, cell, inner)
		seen = append(seen, prev, cell.Load())
		restoreInner()
		seen = append(seen, cell.Load())

		restore()
		done <- append(seen, cell.Load())
	}()

	select {
	case seen := <-done:
		assert.Equal(t, []Resolver{Named("r0"), outer, outer, inner, outer, Named("r0")}, seen)
	case <-time.After(5 * time.Second):
		t.Fatal("nested swap on a shared cell did not return")
	}

	// the window is released once the outermost scope restores
	_, restore := Swap(cell, outer)
	restore()
}

func TestSwapContextLocksForUnrelatedContexts(t *testing.T) {
	cell := NewShared(nil)
	ctx, _, restore := SwapContext(context.Background(), cell, Named("first"))

	entered := make(chan struct{})
	go func() {
		_, _, restoreOther := SwapContext(context.Background(), cell, Named("second"))
		close(entered)
		restoreOther()
	}()

	select {
	case <-entered:
		t.Fatal("second window opened while the first was held")
	case <-time.After(50 * time.Millisecond):
	}

	// a different cell is not held by ctx
	other := NewShared(nil)
	_, _, restoreOther := SwapContext(ctx, other, Named("other"))
	assert.Equal(t, Named("other"), other.Load())
	restoreOther()

	restore()
	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("second window never opened")
	}
}
