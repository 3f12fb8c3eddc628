package actions

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/hermes/pkg/errors"
)

// Set is an immutable set of allowed action types.
type Set struct {
	types map[string]struct{}
}

// NewSet builds a Set from list. A nil list or an empty type name fails
// with INVALID_ACTIONS_LIST. Duplicates collapse.
func NewSet(list []string) (*Set, error) {
	if list == nil {
		return nil, errors.Of(errors.ErrInvalidActionsList).WithDetail("reason", "missing")
	}

	types := make(map[string]struct{}, len(list))
	for i, t := range list {
		if t == "" {
			return nil, errors.Of(errors.ErrInvalidActionsList).WithDetail("index", i)
		}
		types[t] = struct{}{}
	}

	return &Set{types: types}, nil
}

// FromValue converts loosely typed data, such as a decoded config value,
// into a Set. Only []string and []any holding strings are accepted.
func FromValue(v any) (*Set, error) {
	list, err := ToList(v)
	if err != nil {
		return nil, err
	}
	return NewSet(list)
}

// ToList converts v into a list of type names without building a Set.
func ToList(v any) ([]string, error) {
	switch l := v.(type) {
	case []string:
		if l == nil {
			return nil, errors.Of(errors.ErrInvalidActionsList).WithDetail("reason", "missing")
		}
		return l, nil
	case []any:
		if l == nil {
			return nil, errors.Of(errors.ErrInvalidActionsList).WithDetail("reason", "missing")
		}
		list := make([]string, len(l))
		for i, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Of(errors.ErrInvalidActionsList).
					WithDetail("index", i).
					WithDetail("type", fmt.Sprintf("%T", item))
			}
			list[i] = s
		}
		return list, nil
	default:
		return nil, errors.Of(errors.ErrInvalidActionsList).WithDetail("type", fmt.Sprintf("%T", v))
	}
}

// Validate returns actionType unchanged if it is in the set.
func (s *Set) Validate(actionType string) (string, error) {
	if s.Has(actionType) {
		return actionType, nil
	}
	return "", errors.Of(errors.ErrUnknownActionType, actionType).WithDetail("type", actionType)
}

// Has reports whether actionType is in the set.
func (s *Set) Has(actionType string) bool {
	if s == nil {
		return false
	}
	_, ok := s.types[actionType]
	return ok
}

// List returns the set members in sorted order.
func (s *Set) List() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of distinct types in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.types)
}
