package log

import "go.uber.org/zap/zapcore"

// DropFields returns a core that removes fields with the given keys before
// they reach core. Check only consults core's level, so samplers and other
// filtering cores belong outside the result.
func DropFields(core zapcore.Core, keys ...string) zapcore.Core {
	drop := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key != "" {
			drop[key] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return core
	}
	return dropCore{Core: core, drop: drop}
}

type dropCore struct {
	zapcore.Core
	drop map[string]struct{}
}

func (c dropCore) With(fields []zapcore.Field) zapcore.Core {
	return dropCore{Core: c.Core.With(c.filter(fields)), drop: c.drop}
}

func (c dropCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c dropCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, c.filter(fields))
}

func (c dropCore) filter(fields []zapcore.Field) []zapcore.Field {
	kept := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if _, ok := c.drop[f.Key]; !ok {
			kept = append(kept, f)
		}
	}
	return kept
}
