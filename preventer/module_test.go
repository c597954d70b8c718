package preventer

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"

	"github.com/bronystylecrazy/preventer/lifecycle"
	"github.com/bronystylecrazy/preventer/resolver"
)

type seenResolvers struct {
	seen []resolver.Resolver
}

var moduleSeen = &seenResolvers{}

func init() {
	Register("test.recorder", func(Config) (Preventer, error) {
		return Func(func(ctx context.Context, target resolver.Resolver) error {
			moduleSeen.seen = append(moduleSeen.seen, resolver.Current(ctx))
			return nil
		}), nil
	})
	Register("test.broken", func(Config) (Preventer, error) {
		return nil, errors.New("factory exploded")
	})
	Register("test.failing", func(Config) (Preventer, error) {
		return Func(func(context.Context, resolver.Resolver) error { return errHF }), nil
	})
}

func newViper(t *testing.T, settings map[string]any) *viper.Viper {
	t.Helper()
	v := viper.New()
	for k, val := range settings {
		v.Set(k, val)
	}
	return v
}

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(viper.New())
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Shared)
	assert.Equal(t, "host", cfg.HostResolver)
	assert.Equal(t, DefaultHooks, cfg.Hooks)
	assert.Equal(t, []string{"UTC"}, cfg.TimeZones)
	assert.Equal(t, lifecycle.Earliest, cfg.StartPriority)
	assert.Equal(t, lifecycle.Latest, cfg.StopPriority)
}

func TestNewConfigPriorityFromSettings(t *testing.T) {
	cfg, err := NewConfig(newViper(t, map[string]any{
		"preventer.start_priority": 100,
		"preventer.stop_priority":  "-100",
	}))
	require.NoError(t, err)
	assert.Equal(t, lifecycle.Later, cfg.StartPriority)
	assert.Equal(t, lifecycle.Earlier, cfg.StopPriority)
}

func TestNewPrimersAppliesConfiguredPriority(t *testing.T) {
	primers, err := NewPrimers(PrimersParams{
		Config: Config{
			Enabled:       true,
			Hooks:         []string{"test.recorder"},
			StartPriority: lifecycle.Later,
			StopPriority:  lifecycle.Earlier,
		},
		Cell:   resolver.NewLocal(nil),
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)
	require.Len(t, primers, 1)
	assert.Equal(t, lifecycle.Later, primers[0].StartPriority())
	assert.Equal(t, lifecycle.Earlier, primers[0].StopPriority())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	assert.Panics(t, func() {
		Register("test.recorder", func(Config) (Preventer, error) { return nil, nil })
	})
	assert.Panics(t, func() { Register("", nil) })
	assert.Contains(t, Names(), "test.recorder")
}

func TestBuildErrors(t *testing.T) {
	_, err := Build("test.missing", Config{})
	assert.ErrorContains(t, err, `unknown preventer "test.missing"`)

	_, err = Build("test.broken", Config{})
	assert.ErrorContains(t, err, "factory exploded")
}

func TestNewPrimersAggregatesErrors(t *testing.T) {
	_, err := NewPrimers(PrimersParams{
		Config: Config{Enabled: true, Hooks: []string{"test.missing", "test.recorder", "test.broken"}},
		Cell:   resolver.NewLocal(nil),
		Logger: zap.NewNop(),
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "test.missing")
	assert.ErrorContains(t, err, "test.broken")
}

func TestNewPrimersDisabled(t *testing.T) {
	primers, err := NewPrimers(PrimersParams{Config: Config{Hooks: []string{"test.recorder"}}})
	require.NoError(t, err)
	assert.Empty(t, primers)
}

func TestNewCellLocal(t *testing.T) {
	cell := NewCell(Config{HostResolver: "boss"})
	local, ok := cell.(*resolver.Local)
	require.True(t, ok)
	assert.Equal(t, resolver.Named("boss"), local.Load())
}

func TestNewCellSharedLeavesProcessCellAlone(t *testing.T) {
	before := resolver.Default().Load()

	cell := NewCell(Config{HostResolver: "boss", Shared: true})
	shared, ok := cell.(*resolver.Shared)
	require.True(t, ok)
	assert.NotSame(t, resolver.Default(), shared)
	assert.Equal(t, resolver.Named("boss"), shared.Load())
	assert.Equal(t, before, resolver.Default().Load())
}

func TestModuleStartsPrimersUnderHostResolver(t *testing.T) {
	moduleSeen.seen = nil
	var primers []*Primer
	var cell resolver.Cell
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(zap.NewNop()),
		fx.Supply(newViper(t, map[string]any{
			"preventer.hooks":    []string{"test.recorder"},
			"preventer.shared":   false,
			"preventer.resolver": "app",
		})),
		Module(),
		fx.Populate(&primers, &cell),
	)

	app.RequireStart()
	require.Len(t, primers, 1)
	assert.Equal(t, lifecycle.Started, primers[0].State())
	assert.Equal(t, []resolver.Resolver{resolver.Named("app")}, moduleSeen.seen)
	assert.Equal(t, resolver.Named("host"), cell.Load())

	app.RequireStop()
	assert.Equal(t, lifecycle.Stopped, primers[0].State())
}

func TestModuleStartFailureAbortsApp(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(zap.NewNop()),
		fx.Supply(newViper(t, map[string]any{
			"preventer.hooks":  []string{"test.failing"},
			"preventer.shared": false,
		})),
		Module(),
	)
	require.NoError(t, app.Err())

	err := app.Start(context.Background())
	assert.ErrorIs(t, err, errHF)
}
