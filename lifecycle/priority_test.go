package lifecycle

import (
	"context"
	"testing"
)

type testStarter struct {
	id       string
	priority PriorityLevel
}

func (t *testStarter) Start(context.Context) error { return nil }

func (t *testStarter) StartPriority() PriorityLevel { return t.priority }

type plainStarter struct {
	id string
}

func (p *plainStarter) Start(context.Context) error { return nil }

type testStopper struct {
	id       string
	priority PriorityLevel
}

func (t *testStopper) Stop(context.Context) error { return nil }

func (t *testStopper) StopPriority() PriorityLevel { return t.priority }

func starterID(s Starter) string {
	switch v := s.(type) {
	case *testStarter:
		return v.id
	case *plainStarter:
		return v.id
	}
	return ""
}

func TestSortStartersByPriorityStable(t *testing.T) {
	a := &plainStarter{id: "a"}
	b := &testStarter{id: "b", priority: Earlier}
	c := &testStarter{id: "c", priority: Earlier}
	d := &testStarter{id: "d", priority: Later}

	out := sortStartersByPriority([]Starter{a, b, c, d})
	want := []string{"b", "c", "a", "d"}
	for i := range want {
		if got := starterID(out[i]); got != want[i] {
			t.Fatalf("starter order[%d]=%q want %q", i, got, want[i])
		}
	}
}

func TestSortStoppersByPriorityStable(t *testing.T) {
	a := &testStopper{id: "a"}
	b := &testStopper{id: "b", priority: Earliest}
	c := &testStopper{id: "c", priority: Earliest}
	d := &testStopper{id: "d", priority: Latest}

	out := sortStoppersByPriority([]Stopper{a, b, c, d})
	want := []string{"b", "c", "a", "d"}
	for i := range want {
		if got := out[i].(*testStopper).id; got != want[i] {
			t.Fatalf("stopper order[%d]=%q want %q", i, got, want[i])
		}
	}
}
