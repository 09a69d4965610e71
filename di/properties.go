package di

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// PropertySource provides literal values to wiring code at build time.
//
// It is read-only and side effect free. Expected usage:
//
//	val, ok, err := props.Resolve("user.db_type")
type PropertySource interface {
	Resolve(key string) (val any, ok bool, err error)
}

var (
	_ PropertySource = (*MapProperties)(nil)
	_ PropertySource = (*ViperProperties)(nil)
)

// MapProperties is a simple in-memory property source.
type MapProperties struct {
	items map[string]any
}

func NewMapProperties() *MapProperties {
	return &MapProperties{items: map[string]any{}}
}

// Provide stores a value under a key and returns the source for chaining.
func (p *MapProperties) Provide(key string, val any) *MapProperties {
	p.items[key] = val
	return p
}

// Resolve implements PropertySource and converts internal panics into errors.
func (p *MapProperties) Resolve(key string) (val any, ok bool, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			val = nil
			ok = false
			err = fmt.Errorf("%w: %v", ErrPropertyPanic, rec)
		}
	}()

	v, ok := p.items[key]
	return v, ok, nil
}

// ViperProperties exposes a viper instance as a PropertySource.
//
// Keys use viper's dotted form ("notification.smtp_server"). Defaults, the
// config file and environment overrides are all visible through it.
type ViperProperties struct {
	v *viper.Viper
}

func NewViperProperties(v *viper.Viper) *ViperProperties {
	return &ViperProperties{v: v}
}

// Resolve implements PropertySource. Unset keys report ok=false.
func (p *ViperProperties) Resolve(key string) (any, bool, error) {
	if p == nil || p.v == nil || !p.v.IsSet(key) {
		return nil, false, nil
	}
	return p.v.Get(key), true, nil
}

// Decode decodes the sub-tree under key (or everything when key is empty)
// into out using mapstructure tags.
//
// The tree is rebuilt from AllSettings so defaults, file values and
// environment overrides are merged per leaf.
func (p *ViperProperties) Decode(key string, out any) error {
	if p == nil || p.v == nil {
		return ErrNilTarget
	}
	var input any = p.v.AllSettings()
	if key != "" {
		for _, part := range strings.Split(strings.ToLower(key), ".") {
			m, ok := input.(map[string]any)
			if !ok {
				return MissingDependencyError{Key: Key(key)}
			}
			if input, ok = m[part]; !ok {
				return MissingDependencyError{Key: Key(key)}
			}
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result: out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("di: decode %q: %w", key, err)
	}
	return nil
}

// StringProperty resolves key as a string, falling back to def when the key
// is unset or src is nil.
func StringProperty(src PropertySource, key, def string) (string, error) {
	raw, ok, err := resolve(src, key)
	if err != nil || !ok {
		return def, err
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return def, wrongType(key, raw)
	}
	return s, nil
}

// IntProperty resolves key as an int, falling back to def when unset.
func IntProperty(src PropertySource, key string, def int) (int, error) {
	raw, ok, err := resolve(src, key)
	if err != nil || !ok {
		return def, err
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return def, wrongType(key, raw)
	}
	return n, nil
}

// StringsProperty resolves key as a list of strings. A plain string value is
// split on commas, which is how list values arrive from the environment; a
// blank string is an empty list. Lists are converted element by element.
// Any other type is a WrongTypeDependencyError.
func StringsProperty(src PropertySource, key string, def []string) ([]string, error) {
	raw, ok, err := resolve(src, key)
	if err != nil || !ok {
		return def, err
	}
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}, nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	case []string, []any:
		list, err := cast.ToStringSliceE(v)
		if err != nil {
			return def, wrongType(key, raw)
		}
		return list, nil
	default:
		return def, wrongType(key, raw)
	}
}

func resolve(src PropertySource, key string) (any, bool, error) {
	if src == nil {
		return nil, false, nil
	}
	raw, ok, err := src.Resolve(key)
	if err != nil {
		return nil, false, err
	}
	if !ok || raw == nil {
		return nil, false, nil
	}
	return raw, true, nil
}

func wrongType(key string, raw any) error {
	return WrongTypeDependencyError{Key: Key(key), GotType: reflect.TypeOf(raw).String()}
}
