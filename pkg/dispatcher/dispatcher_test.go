// pkg/dispatcher/dispatcher_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Mock dispatch
// PURPOSE: Test dispatcher construction, validation and chain execution

package dispatcher_test

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/hermes/pkg/dispatcher"
	"github.com/arthur-debert/hermes/pkg/errors"
	"github.com/arthur-debert/hermes/pkg/types"
)

var actionsList = []string{"NEW_MESSAGE", "NOTIFICATION", "USER_LOGIN"}

const actionType = "USER_LOGIN"

type sentinel struct{ name string }

// dispatchSpy records calls to the terminal dispatch.
type dispatchSpy struct {
	mock.Mock
}

func (s *dispatchSpy) Dispatch(action types.Action) (any, error) {
	args := s.Called(action)
	return args.Get(0), args.Error(1)
}

func identity(action types.Action) (any, error) {
	return action, nil
}

func passThrough(action types.Action, next types.Next[any], _ types.TypeValidator) (any, error) {
	return next()
}

func TestNew_InvalidActionsList(t *testing.T) {
	tests := []struct {
		name string
		list []string
	}{
		{"nil list", nil},
		{"empty type name", append(append([]string{}, actionsList...), "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := dispatcher.New(tt.list, identity, passThrough)
			require.Error(t, err)
			assert.Nil(t, d)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidActionsList))
		})
	}
}

func TestNew_InvalidDispatch(t *testing.T) {
	d, err := dispatcher.New[any](actionsList, nil, passThrough)
	require.Error(t, err)
	assert.Nil(t, d)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDispatch))
	assert.Equal(t, `[INVALID_DISPATCH] "dispatch" must be a function`, err.Error())
}

func TestNew_InvalidMiddlewareList(t *testing.T) {
	d, err := dispatcher.New(actionsList, identity, passThrough, nil)
	require.Error(t, err)
	assert.Nil(t, d)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidMiddlewareList))
	assert.Equal(t, 1, errors.GetErrorDetails(err)["index"])
}

func TestNew_ChecksActionsListFirst(t *testing.T) {
	_, err := dispatcher.New[any](nil, nil, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidActionsList))

	_, err = dispatcher.New[any](actionsList, nil, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDispatch))
}

func TestNew_Valid(t *testing.T) {
	t.Run("without middleware", func(t *testing.T) {
		d, err := dispatcher.New(actionsList, identity)
		require.NoError(t, err)
		assert.Equal(t, 0, d.MiddlewareCount())
	})

	t.Run("with middleware", func(t *testing.T) {
		d, err := dispatcher.New(actionsList, identity, passThrough)
		require.NoError(t, err)
		assert.Equal(t, 1, d.MiddlewareCount())
		assert.Equal(t, []string{"NEW_MESSAGE", "NOTIFICATION", "USER_LOGIN"}, d.Types())
		assert.Equal(t, dispatcher.DefaultConfig(), d.Config())
	})

	t.Run("empty actions list rejects every type", func(t *testing.T) {
		d, err := dispatcher.New([]string{}, identity)
		require.NoError(t, err)
		_, err = d.Dispatch(actionType, nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownActionType))
	})
}

func TestDispatch_EndToEnd(t *testing.T) {
	d, err := dispatcher.New([]string{"A", "B"}, identity)
	require.NoError(t, err)

	got, err := d.Dispatch("A", 42)
	require.NoError(t, err)

	want := types.Action{Type: "A", Data: 42, Meta: types.Meta{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dispatch() mismatch (-want +got):\n%s", diff)
	}

	_, err = d.Dispatch("C", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownActionType))
	assert.Contains(t, err.Error(), `the action "C" is not part of the provided actions list`)
}

func TestDispatch_UnknownTypeRunsNothing(t *testing.T) {
	spy := &dispatchSpy{}
	var middlewareCalls int32
	counting := func(action types.Action, next types.Next[any], _ types.TypeValidator) (any, error) {
		atomic.AddInt32(&middlewareCalls, 1)
		return next()
	}

	d, err := dispatcher.New(actionsList, spy.Dispatch, counting)
	require.NoError(t, err)

	for _, bad := range []string{"", "foo", "user_login"} {
		_, err := d.Dispatch(bad, nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownActionType), bad)
	}

	assert.Zero(t, atomic.LoadInt32(&middlewareCalls))
	spy.AssertNotCalled(t, "Dispatch", mock.Anything)
}

func TestDispatchWithMeta_InvalidMeta(t *testing.T) {
	spy := &dispatchSpy{}
	d, err := dispatcher.New(actionsList, spy.Dispatch)
	require.NoError(t, err)

	var nilMap map[string]any
	tests := []struct {
		name string
		meta any
	}{
		{"nil", nil},
		{"nil map", nilMap},
		{"string", "foo"},
		{"slice", []any{}},
		{"func", func() {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.DispatchWithMeta(actionType, "data", tt.meta)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidMeta))
		})
	}

	spy.AssertNotCalled(t, "Dispatch", mock.Anything)
}

func TestDispatchWithMeta_TypeCheckedBeforeMeta(t *testing.T) {
	d, err := dispatcher.New(actionsList, identity)
	require.NoError(t, err)

	_, err = d.DispatchWithMeta("foo", nil, "not a map")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownActionType))
}

func TestDispatch_InvokesDispatchWithAction(t *testing.T) {
	data := &sentinel{name: "data"}
	res := &sentinel{name: "result"}
	meta := map[string]any{"prop": &sentinel{name: "prop"}}

	tests := []struct {
		name     string
		dispatch func(types.Func[any]) (any, error)
		want     types.Action
	}{
		{
			name:     "type only",
			dispatch: func(f types.Func[any]) (any, error) { return f(actionType, nil) },
			want:     types.Action{Type: actionType, Data: nil, Meta: types.Meta{}},
		},
		{
			name:     "type and data",
			dispatch: func(f types.Func[any]) (any, error) { return f(actionType, data) },
			want:     types.Action{Type: actionType, Data: data, Meta: types.Meta{}},
		},
		{
			name:     "type, data and meta",
			dispatch: func(f types.Func[any]) (any, error) { return f(actionType, data, meta) },
			want:     types.Action{Type: actionType, Data: data, Meta: types.Meta(meta)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &dispatchSpy{}
			spy.On("Dispatch", tt.want).Return(res, nil).Once()

			f, err := dispatcher.Create(actionsList, spy.Dispatch)
			require.NoError(t, err)

			got, err := tt.dispatch(f)
			require.NoError(t, err)
			assert.Same(t, res, got)
			spy.AssertNumberOfCalls(t, "Dispatch", 1)
			spy.AssertExpectations(t)
		})
	}
}

func TestDispatch_MetaIsCopied(t *testing.T) {
	var received types.Action
	d, err := dispatcher.New(actionsList, func(action types.Action) (any, error) {
		received = action
		action.Meta["added"] = true
		return nil, nil
	})
	require.NoError(t, err)

	meta := map[string]any{"prop": "before"}
	_, err = d.DispatchWithMeta(actionType, nil, meta)
	require.NoError(t, err)

	meta["prop"] = "after"

	assert.Equal(t, "before", received.Meta["prop"])
	assert.NotContains(t, meta, "added")
}

func TestDispatch_OmittedMetaIsFreshEachCall(t *testing.T) {
	var metas []types.Meta
	d, err := dispatcher.New(actionsList, func(action types.Action) (any, error) {
		action.Meta["seen"] = len(metas)
		metas = append(metas, action.Meta)
		return nil, nil
	})
	require.NoError(t, err)

	_, _ = d.Dispatch(actionType, nil)
	_, _ = d.Dispatch(actionType, nil)

	require.Len(t, metas, 2)
	assert.Equal(t, types.Meta{"seen": 0}, metas[0])
	assert.Equal(t, types.Meta{"seen": 1}, metas[1])
}

func TestFunc_TooManyMetaArguments(t *testing.T) {
	f, err := dispatcher.Create(actionsList, identity)
	require.NoError(t, err)

	_, err = f(actionType, nil, types.Meta{}, types.Meta{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidMeta))

	_, err = f("foo", nil, types.Meta{}, types.Meta{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownActionType))
}

func TestCreate_PropagatesConstructionErrors(t *testing.T) {
	f, err := dispatcher.Create[any](actionsList, nil)
	assert.Nil(t, f)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDispatch))
}

func TestMiddleware_ReceivesActionNextAndValidator(t *testing.T) {
	type call struct {
		action   types.Action
		hasNext  bool
		validate types.TypeValidator
	}
	var calls []call

	recorder := func(action types.Action, next types.Next[any], validate types.TypeValidator) (any, error) {
		calls = append(calls, call{action: action, hasNext: next != nil, validate: validate})
		return next()
	}

	d, err := dispatcher.New(actionsList, identity, recorder, recorder)
	require.NoError(t, err)

	inputs := []types.Action{
		{Type: actionType, Data: nil, Meta: types.Meta{}},
		{Type: actionType, Data: 1, Meta: types.Meta{}},
		{Type: "NEW_MESSAGE", Data: "hi", Meta: types.Meta{"prop": 1}},
	}
	_, _ = d.Dispatch(inputs[0].Type, inputs[0].Data)
	_, _ = d.Dispatch(inputs[1].Type, inputs[1].Data)
	_, _ = d.DispatchWithMeta(inputs[2].Type, inputs[2].Data, map[string]any{"prop": 1})

	require.Len(t, calls, 6)
	for i, c := range calls {
		assert.Equal(t, inputs[i/2], c.action)
		assert.True(t, c.hasNext)
		require.NotNil(t, c.validate)
	}
}

func TestMiddleware_Validator(t *testing.T) {
	var validate types.TypeValidator
	capture := func(action types.Action, next types.Next[any], v types.TypeValidator) (any, error) {
		validate = v
		return nil, nil
	}

	d, err := dispatcher.New(actionsList, identity, capture)
	require.NoError(t, err)
	_, err = d.Dispatch(actionType, nil)
	require.NoError(t, err)

	got, err := validate(actionType)
	require.NoError(t, err)
	assert.Equal(t, actionType, got)

	_, err = validate("foo")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownActionType))
}

func TestMiddleware_Order(t *testing.T) {
	var order []string
	record := func(name string) types.Middleware[any] {
		return func(action types.Action, next types.Next[any], _ types.TypeValidator) (any, error) {
			order = append(order, name)
			return next()
		}
	}

	spy := &dispatchSpy{}
	spy.On("Dispatch", mock.Anything).Run(func(mock.Arguments) {
		order = append(order, "dispatch")
	}).Return(nil, nil)

	d, err := dispatcher.New(actionsList, spy.Dispatch, record("m1"), record("m2"))
	require.NoError(t, err)

	_, err = d.Dispatch(actionType, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"m1", "m2", "dispatch"}, order)
	spy.AssertNumberOfCalls(t, "Dispatch", 1)
}

func TestMiddleware_ShortCircuit(t *testing.T) {
	res := &sentinel{name: "res"}
	var m2Calls int

	m1 := func(action types.Action, next types.Next[any], _ types.TypeValidator) (any, error) {
		return res, nil
	}
	m2 := func(action types.Action, next types.Next[any], _ types.TypeValidator) (any, error) {
		m2Calls++
		return next()
	}

	spy := &dispatchSpy{}
	d, err := dispatcher.New(actionsList, spy.Dispatch, m1, m2)
	require.NoError(t, err)

	got, err := d.Dispatch(actionType, nil)
	require.NoError(t, err)
	assert.Same(t, res, got)
	assert.Zero(t, m2Calls)
	spy.AssertNotCalled(t, "Dispatch", mock.Anything)
}

func TestMiddleware_ShortCircuitWithZeroValue(t *testing.T) {
	stop := func(action types.Action, next types.Next[any], _ types.TypeValidator) (any, error) {
		return nil, nil
	}

	d, err := dispatcher.New(actionsList, identity, stop)
	require.NoError(t, err)

	got, err := d.Dispatch(actionType, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMiddleware_ErrorPropagates(t *testing.T) {
	boom := errors.New(errors.ErrInternal, "boom")
	failing := func(action types.Action, next types.Next[any], _ types.TypeValidator) (any, error) {
		return nil, boom
	}

	d, err := dispatcher.New(actionsList, identity, passThrough, failing)
	require.NoError(t, err)

	_, err = d.Dispatch(actionType, nil)
	assert.Same(t, boom, err)
}

func TestMiddleware_DispatchErrorReachesMiddleware(t *testing.T) {
	boom := errors.New(errors.ErrInternal, "boom")
	var seen error
	observe := func(action types.Action, next types.Next[any], _ types.TypeValidator) (any, error) {
		res, err := next()
		seen = err
		return res, err
	}

	d, err := dispatcher.New(actionsList, func(types.Action) (any, error) { return nil, boom }, observe)
	require.NoError(t, err)

	_, err = d.Dispatch(actionType, nil)
	assert.Same(t, boom, err)
	assert.Same(t, boom, seen)
}

func TestMiddleware_NextCalledTwice(t *testing.T) {
	twice := func(action types.Action, next types.Next[any], _ types.TypeValidator) (any, error) {
		if _, err := next(); err != nil {
			return nil, err
		}
		return next()
	}

	t.Run("reruns the rest of the chain by default", func(t *testing.T) {
		spy := &dispatchSpy{}
		spy.On("Dispatch", mock.Anything).Return("ok", nil)

		d, err := dispatcher.New(actionsList, spy.Dispatch, twice)
		require.NoError(t, err)

		got, err := d.Dispatch(actionType, nil)
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		spy.AssertNumberOfCalls(t, "Dispatch", 2)
	})

	t.Run("guarded next fails on second call", func(t *testing.T) {
		spy := &dispatchSpy{}
		spy.On("Dispatch", mock.Anything).Return("ok", nil)

		cfg := dispatcher.DefaultConfig().WithName("guarded").WithGuardNext(true)
		d, err := dispatcher.NewWithConfig(cfg, actionsList, spy.Dispatch, passThrough, twice)
		require.NoError(t, err)

		_, err = d.Dispatch(actionType, nil)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNextReentered))
		assert.Equal(t, 1, errors.GetErrorDetails(err)["index"])
		spy.AssertNumberOfCalls(t, "Dispatch", 1)

		// the guard is per dispatch, not per dispatcher
		_, err = d.Dispatch(actionType, nil)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNextReentered))
		spy.AssertNumberOfCalls(t, "Dispatch", 2)
	})
}

func TestDispatch_Concurrent(t *testing.T) {
	var dispatched int64
	d, err := dispatcher.New(actionsList, func(action types.Action) (int, error) {
		atomic.AddInt64(&dispatched, 1)
		return len(action.Meta), nil
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := d.DispatchWithMeta(actionType, i, types.Meta{"i": i})
			assert.NoError(t, err)
			assert.Equal(t, 1, got)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(50), atomic.LoadInt64(&dispatched))
}

func TestLogging_SilentByDefault(t *testing.T) {
	var global bytes.Buffer
	saved, savedLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&global)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(savedLevel)
	})

	d, err := dispatcher.New(actionsList, identity, passThrough)
	require.NoError(t, err)
	_, err = d.Dispatch(actionType, nil)
	require.NoError(t, err)

	assert.Empty(t, global.String())
}

func TestLogging_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	saved := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(saved) })

	cfg := dispatcher.DefaultConfig().
		WithName("audited").
		WithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))
	d, err := dispatcher.NewWithConfig(cfg, actionsList, identity)
	require.NoError(t, err)
	_, err = d.Dispatch(actionType, nil)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Dispatcher created")
	assert.Contains(t, out, "Dispatching action")
	assert.Contains(t, out, `"dispatcher":"audited"`)
	assert.Contains(t, out, `"type":"USER_LOGIN"`)
}
