package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const DefaultFile = "config.toml"

type state struct {
	file         string
	configType   string
	envPrefix    string
	automaticEnv bool
	optional     bool
	defaults     map[string]any
}

type Option func(*state)

// WithFile reads configuration from path.
func WithFile(path string) Option {
	return func(s *state) { s.file = path }
}

// WithType forces the configuration format ("toml", "yaml", "json").
func WithType(kind string) Option {
	return func(s *state) { s.configType = kind }
}

// WithEnvPrefix makes environment overrides use PREFIX_KEY names.
func WithEnvPrefix(prefix string) Option {
	return func(s *state) { s.envPrefix = prefix }
}

// WithNoEnv disables environment overrides.
func WithNoEnv() Option {
	return func(s *state) {
		s.automaticEnv = false
		s.envPrefix = ""
	}
}

// WithRequired fails Load when the file does not exist.
func WithRequired() Option {
	return func(s *state) { s.optional = false }
}

func WithDefault(key string, value any) Option {
	return func(s *state) {
		if s.defaults == nil {
			s.defaults = map[string]any{}
		}
		s.defaults[key] = value
	}
}

// Load builds a viper instance. Environment overrides are on by default with
// "." and "-" mapped to "_", and a missing file is not an error unless
// WithRequired is given.
func Load(opts ...Option) (*viper.Viper, error) {
	s := state{
		automaticEnv: true,
		optional:     true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}

	v := viper.New()
	if s.envPrefix != "" {
		v.SetEnvPrefix(s.envPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	if s.automaticEnv {
		v.AutomaticEnv()
	}
	if s.configType != "" {
		v.SetConfigType(s.configType)
	}
	for k, val := range s.defaults {
		v.SetDefault(k, val)
	}
	if s.file == "" {
		return v, nil
	}

	v.SetConfigFile(s.file)
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if s.optional && (errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)) {
			return v, nil
		}
		if cleaned, ok := sanitize(s.file); ok {
			if s.configType == "" {
				if ext := strings.TrimPrefix(filepath.Ext(s.file), "."); ext != "" {
					v.SetConfigType(ext)
				}
			}
			if rerr := v.ReadConfig(bytes.NewReader(cleaned)); rerr == nil {
				return v, nil
			}
		}
		return nil, fmt.Errorf("config: read %s: %w", s.file, err)
	}
	return v, nil
}

// sanitize strips byte order marks and zero width spaces some editors leave
// behind. It reports false when the file needed no changes.
func sanitize(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	cleaned := bytes.ReplaceAll(data, []byte("\xEF\xBB\xBF"), nil)
	cleaned = bytes.ReplaceAll(cleaned, []byte("\xE2\x80\x8B"), nil)
	if len(cleaned) == len(data) {
		return nil, false
	}
	return cleaned, true
}

// Decode decodes key (or the whole tree when key is empty) into out, which
// must be a pointer. Values come from AllSettings so environment overrides of
// nested keys apply.
func Decode(v *viper.Viper, key string, out any) error {
	t := reflect.TypeOf(out)
	if t == nil || t.Kind() != reflect.Pointer {
		return fmt.Errorf("config: target must be a pointer")
	}
	settings := v.AllSettings()
	var input any = settings
	if key != "" {
		input = lookup(settings, strings.Split(strings.ToLower(key), "."))
	}
	if input == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("config: decode %q: %w", key, err)
	}
	return nil
}

func lookup(tree map[string]any, path []string) any {
	var cur any = tree
	for _, part := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}
