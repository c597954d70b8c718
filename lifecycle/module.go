package lifecycle

import "go.uber.org/fx"

const (
	StartersGroupName = "lifecycle.starters"
	StoppersGroupName = "lifecycle.stoppers"
)

// AsStarter annotates constructor so its result joins the starters group.
func AsStarter(constructor any) any {
	return fx.Annotate(constructor,
		fx.As(new(Starter)),
		fx.ResultTags(`group:"`+StartersGroupName+`"`),
	)
}

// AsStopper annotates constructor so its result joins the stoppers group.
func AsStopper(constructor any) any {
	return fx.Annotate(constructor,
		fx.As(new(Stopper)),
		fx.ResultTags(`group:"`+StoppersGroupName+`"`),
	)
}

func Module() fx.Option {
	return fx.Module("lifecycle",
		fx.Invoke(fx.Annotate(AppendStarters, fx.ParamTags(``, `group:"`+StartersGroupName+`"`))),
		fx.Invoke(fx.Annotate(AppendStoppers, fx.ParamTags(``, `group:"`+StoppersGroupName+`"`))),
	)
}
