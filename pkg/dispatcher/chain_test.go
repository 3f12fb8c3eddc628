package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/types"
)

func noValidate(actionType string) (string, error) { return actionType, nil }

func TestBuildChain_NoMiddlewareIsDispatch(t *testing.T) {
	calls := 0
	chain := buildChain(func(action types.Action) (string, error) {
		calls++
		return action.Type, nil
	}, nil, noValidate, false)

	got, err := chain(types.NewAction("A", nil))
	require.NoError(t, err)
	assert.Equal(t, "A", got)
	assert.Equal(t, 1, calls)
}

func TestBuildChain_WrapsInDeclaredOrder(t *testing.T) {
	wrap := func(tag string) types.Middleware[string] {
		return func(action types.Action, next types.Next[string], _ types.TypeValidator) (string, error) {
			inner, err := next()
			return tag + "(" + inner + ")", err
		}
	}

	chain := buildChain(func(action types.Action) (string, error) {
		return action.Type, nil
	}, []types.Middleware[string]{wrap("a"), wrap("b"), wrap("c")}, noValidate, false)

	got, err := chain(types.NewAction("X", nil))
	require.NoError(t, err)
	assert.Equal(t, "a(b(c(X)))", got)
}

func TestOnceNext(t *testing.T) {
	calls := 0
	next := onceNext(types.Next[int](func() (int, error) {
		calls++
		return calls, nil
	}), 3)

	got, err := next()
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = next()
	assert.Zero(t, got)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNextReentered))
	assert.Contains(t, err.Error(), "middleware 3")
	assert.Equal(t, 1, calls)
}
