package transform

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/asaidimu/go-rowwise/core/expr"
	"github.com/asaidimu/go-rowwise/core/frame"
)

func collectEvents(t *testing.T, ch <-chan Event, n int) []Event {
	t.Helper()
	events := make([]Event, 0, n)
	for len(events) < n {
		select {
		case ev := <-ch:
			events = append(events, ev)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for events, got %d of %d", len(events), n)
		}
	}
	return events
}

func TestPipelineApply(t *testing.T) {
	pipeline, err := NewPipeline(zap.NewNop())
	require.NoError(t, err)
	defer pipeline.Close()

	received := make(chan Event, 8)
	callback := func(ctx context.Context, event Event) error {
		received <- event
		return nil
	}
	pipeline.RegisterSubscription(RegisterSubscriptionOptions{Event: ApplyStart, Callback: callback})
	pipeline.RegisterSubscription(RegisterSubscriptionOptions{Event: ApplySuccess, Callback: callback})

	fr, err := frame.New(frame.Ints("a", 1, 2, 3))
	require.NoError(t, err)
	plan := NewPlanBuilder().
		Mutate("b", expr.NewMult(expr.NewName("a"), expr.NewLiteral(10))).
		Build()

	out, err := pipeline.Apply(fr, &plan, nil)
	require.NoError(t, err)

	// The transformation result matches what the processor alone produces.
	direct, err := NewProcessor(zap.NewNop()).Apply(fr, &plan, nil)
	require.NoError(t, err)
	assert.True(t, out.Equal(direct))

	events := collectEvents(t, received, 2)
	byType := make(map[EventType]Event, len(events))
	for _, ev := range events {
		byType[ev.Type] = ev
	}

	start, ok := byType[ApplyStart]
	require.True(t, ok, "expected an apply:start event")
	assert.Equal(t, "apply", start.Operation)
	require.NotNil(t, start.Plan)
	assert.Contains(t, *start.Plan, "MUTATE: b")
	require.NotNil(t, start.Rows)
	assert.Equal(t, 3, *start.Rows)

	success, ok := byType[ApplySuccess]
	require.True(t, ok, "expected an apply:success event")
	assert.Nil(t, success.Error)
	assert.NotNil(t, success.Duration)
}

func TestPipelineApplyFailure(t *testing.T) {
	pipeline, err := NewPipeline(nil)
	require.NoError(t, err)
	defer pipeline.Close()

	received := make(chan Event, 4)
	pipeline.RegisterSubscription(RegisterSubscriptionOptions{
		Event: ApplyFailed,
		Callback: func(ctx context.Context, event Event) error {
			received <- event
			return nil
		},
	})

	fr, err := frame.New(frame.Ints("a", 1))
	require.NoError(t, err)
	plan := NewPlanBuilder().Mutate("x", expr.NewName("ghost")).Build()

	_, err = pipeline.Apply(fr, &plan, nil)
	require.Error(t, err)
	assert.True(t, expr.ErrUnresolvedName.Is(err))

	events := collectEvents(t, received, 1)
	require.NotNil(t, events[0].Error)
	assert.Contains(t, *events[0].Error, "ghost")
}

func TestPipelineEvaluate(t *testing.T) {
	pipeline, err := NewPipeline(nil)
	require.NoError(t, err)
	defer pipeline.Close()

	received := make(chan Event, 4)
	pipeline.RegisterSubscription(RegisterSubscriptionOptions{
		Event: EvaluateSuccess,
		Callback: func(ctx context.Context, event Event) error {
			received <- event
			return nil
		},
	})

	fr, err := frame.New(frame.Ints("x", 10, 11))
	require.NoError(t, err)

	result, err := pipeline.Evaluate(fr, expr.NewPlus(expr.NewName("x"), expr.NewLiteral(1)), nil)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(11), int64(12)}, result.Values)
	assert.Equal(t, frame.KindInt, result.Kind)

	events := collectEvents(t, received, 1)
	require.NotNil(t, events[0].Expression)
	assert.Equal(t, "(x + 1)", *events[0].Expression)
}

func TestPipelineSubscriptions(t *testing.T) {
	pipeline, err := NewPipeline(nil)
	require.NoError(t, err)
	defer pipeline.Close()

	noop := func(ctx context.Context, event Event) error { return nil }

	label := "audit"
	first := pipeline.RegisterSubscription(RegisterSubscriptionOptions{
		Event:    ApplySuccess,
		Label:    &label,
		Callback: noop,
	})
	second := pipeline.RegisterSubscription(RegisterSubscriptionOptions{
		Event:    ApplyFailed,
		Callback: noop,
	})
	assert.NotEqual(t, first, second)

	subs := pipeline.Subscriptions()
	require.Len(t, subs, 2)

	pipeline.UnregisterSubscription(first)
	subs = pipeline.Subscriptions()
	require.Len(t, subs, 1)
	assert.Equal(t, ApplyFailed, subs[0].Event)

	// Unknown IDs are ignored.
	pipeline.UnregisterSubscription("not-an-id")
	assert.Len(t, pipeline.Subscriptions(), 1)

	pipeline.Close()
	assert.Empty(t, pipeline.Subscriptions())
}
