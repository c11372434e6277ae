package config

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/karabiner-go/manipulator/internal/eventdef"
)

// newDecodeHooks returns the composed mapstructure decode hook set used
// to unmarshal the koanf tree into *Root: one hook per custom type this
// schema introduces beyond what mapstructure handles natively.
func newDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToKeyboardTypeHook(),
		sliceToModifierSetHook(),
	)
}

func stringToKeyboardTypeHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(KeyboardType("")) {
			return data, nil
		}
		kt := KeyboardType(data.(string))
		switch kt {
		case KeyboardTypeANSI, KeyboardTypeISO, KeyboardTypeJIS:
			return kt, nil
		default:
			return KeyboardTypeANSI, nil
		}
	}
}

func sliceToModifierSetHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.Slice || t != reflect.TypeOf(eventdef.ModifierSet{}) {
			return data, nil
		}
		items, ok := data.([]any)
		if !ok {
			return data, nil
		}
		set := make(eventdef.ModifierSet, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				set[eventdef.ModifierFlag(s)] = struct{}{}
			}
		}
		return set, nil
	}
}
