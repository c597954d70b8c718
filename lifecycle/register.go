package lifecycle

import (
	"go.uber.org/fx"
)

func AppendStarters(lc fx.Lifecycle, starters ...Starter) {
	for _, starter := range sortStartersByPriority(starters) {
		lc.Append(fx.Hook{
			OnStart: starter.Start,
		})
	}
}

func AppendStoppers(lc fx.Lifecycle, stoppers ...Stopper) {
	for _, stopper := range sortStoppersByPriority(stoppers) {
		lc.Append(fx.Hook{
			OnStop: stopper.Stop,
		})
	}
}
