package lifecycle

import "sort"

type PriorityLevel int64

const (
	Earliest PriorityLevel = -200
	Earlier  PriorityLevel = -100
	Normal   PriorityLevel = 0
	Later    PriorityLevel = 100
	Latest   PriorityLevel = 200
)

// StartPrioritized controls starter registration order.
// Lower values register earlier. Stable order is preserved for ties.
type StartPrioritized interface {
	StartPriority() PriorityLevel
}

// StopPrioritized controls stopper registration order.
// Lower values register earlier. Stable order is preserved for ties.
type StopPrioritized interface {
	StopPriority() PriorityLevel
}

func sortStartersByPriority(starters []Starter) []Starter {
	if len(starters) <= 1 {
		return starters
	}
	type keyedStarter struct {
		value    Starter
		priority PriorityLevel
	}
	keyed := make([]keyedStarter, len(starters))
	for i, starter := range starters {
		keyed[i] = keyedStarter{value: starter, priority: startPriorityOf(starter)}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].priority < keyed[j].priority
	})
	out := make([]Starter, len(keyed))
	for i := range keyed {
		out[i] = keyed[i].value
	}
	return out
}

func sortStoppersByPriority(stoppers []Stopper) []Stopper {
	if len(stoppers) <= 1 {
		return stoppers
	}
	type keyedStopper struct {
		value    Stopper
		priority PriorityLevel
	}
	keyed := make([]keyedStopper, len(stoppers))
	for i, stopper := range stoppers {
		keyed[i] = keyedStopper{value: stopper, priority: stopPriorityOf(stopper)}
	}
	sort.SliceStable(keyed, func(i, j int) bool {
		return keyed[i].priority < keyed[j].priority
	})
	out := make([]Stopper, len(keyed))
	for i := range keyed {
		out[i] = keyed[i].value
	}
	return out
}

func startPriorityOf(starter Starter) PriorityLevel {
	if p, ok := starter.(StartPrioritized); ok {
		return p.StartPriority()
	}
	return Normal
}

func stopPriorityOf(stopper Stopper) PriorityLevel {
	if p, ok := stopper.(StopPrioritized); ok {
		return p.StopPriority()
	}
	return Normal
}
