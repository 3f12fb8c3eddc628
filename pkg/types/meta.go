package types

import (
	"fmt"
	"reflect"

	"github.com/arthur-debert/hermes/pkg/errors"
)

// Meta carries caller-defined metadata alongside an action.
type Meta map[string]any

// Clone returns a shallow copy of m. Cloning a nil Meta yields an empty one.
func (m Meta) Clone() Meta {
	out := make(Meta, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Keys returns the metadata keys in no particular order.
func (m Meta) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ValidateMeta checks that v is a non-nil map with string keys and
// returns a shallow copy of it, so later changes to v do not reach the
// action in flight.
func ValidateMeta(v any) (Meta, error) {
	switch m := v.(type) {
	case Meta:
		if m == nil {
			return nil, invalidMeta(v)
		}
		return m.Clone(), nil
	case map[string]any:
		if m == nil {
			return nil, invalidMeta(v)
		}
		return Meta(m).Clone(), nil
	case map[string]string:
		if m == nil {
			return nil, invalidMeta(v)
		}
		out := make(Meta, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, nil
	default:
		return fromMap(v)
	}
}

// fromMap copies any other map keyed by a string type.
func fromMap(v any) (Meta, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, invalidMeta(v)
	}
	out := make(Meta, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, nil
}

func invalidMeta(v any) error {
	return errors.Of(errors.ErrInvalidMeta).WithDetail("type", fmt.Sprintf("%T", v))
}
