package transform

import (
	"fmt"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asaidimu/go-rowwise/core/expr"
	"github.com/asaidimu/go-rowwise/core/frame"
)

// SubscriptionInfo describes a registered event subscription.
type SubscriptionInfo struct {
	Id          *string   `json:"id,omitempty"`
	Event       EventType `json:"event"`
	Label       *string   `json:"label,omitempty"`
	Description *string   `json:"description,omitempty"`
	Unsubscribe func()    `json:"-"`
}

// RegisterSubscriptionOptions defines the options for registering an event
// subscription.
type RegisterSubscriptionOptions struct {
	Event       EventType `json:"event"`
	Label       *string   `json:"label,omitempty"`
	Description *string   `json:"description,omitempty"`
	Callback    CallbackFunction
}

// Pipeline couples a Processor with an event bus so every operation emits
// start, success and failure events that observers can subscribe to. The
// transformation semantics are exactly those of the underlying Processor;
// the pipeline adds observability, not behavior.
type Pipeline struct {
	processor     *Processor
	logger        *zap.Logger
	bus           *events.TypedEventBus[Event]
	subscriptions map[string]*SubscriptionInfo
	subMu         sync.RWMutex
}

// Ensure Pipeline satisfies the Transformer interface.
var _ Transformer = (*Pipeline)(nil)

// NewPipeline creates a new Pipeline instance with its own event bus.
func NewPipeline(logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	bus, err := events.NewTypedEventBus[Event](events.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}
	return &Pipeline{
		processor:     NewProcessor(logger),
		logger:        logger,
		bus:           bus,
		subscriptions: make(map[string]*SubscriptionInfo),
	}, nil
}

// Processor returns the underlying processor.
func (pl *Pipeline) Processor() *Processor {
	return pl.processor
}

// emitEvent is a helper method to emit events.
func (pl *Pipeline) emitEvent(event Event) {
	if pl.bus != nil {
		pl.bus.Emit(string(event.Type), event)
	}
}

// withEventEmission wraps an operation with start, success and failure
// events. The wrapped operation's result and error pass through unchanged.
func (pl *Pipeline) withEventEmission(
	operation string,
	startEventType EventType,
	successEventType EventType,
	failedEventType EventType,
	expression *string,
	plan *string,
	rows int,
	fn func() (any, error),
) (any, error) {
	startTime := time.Now()

	startEvent := createEvent(startEventType, operation, expression, plan, &rows, nil, nil, nil, startTime)
	pl.emitEvent(startEvent)

	result, err := fn()

	if err != nil {
		errStr := err.Error()
		failEvent := createEvent(failedEventType, operation, expression, plan, &rows, nil, nil, &errStr, startTime)
		pl.emitEvent(failEvent)
		return nil, err
	}

	successEvent := createEvent(successEventType, operation, expression, plan, &rows, nil, result, nil, startTime)
	pl.emitEvent(successEvent)

	return result, nil
}

// Apply runs plan against fr, emitting events around the run. The
// transformation itself is delegated to the underlying Processor and its
// result and error are returned unchanged.
func (pl *Pipeline) Apply(fr *frame.Frame, plan *Plan, enclosing *expr.Scope) (*frame.Frame, error) {
	var planStr *string
	if plan != nil {
		s := plan.String()
		planStr = &s
	}

	result, err := pl.withEventEmission(
		"apply",
		ApplyStart,
		ApplySuccess,
		ApplyFailed,
		nil,
		planStr,
		fr.Len(),
		func() (any, error) {
			return pl.processor.Apply(fr, plan, enclosing)
		},
	)
	if err != nil {
		return nil, err
	}
	return result.(*frame.Frame), nil
}

// Evaluate runs a single row-wise evaluation, emitting events around it.
func (pl *Pipeline) Evaluate(fr *frame.Frame, e expr.Expression, enclosing *expr.Scope) (*Result, error) {
	var exprStr *string
	if e != nil {
		s := e.String()
		exprStr = &s
	}

	result, err := pl.withEventEmission(
		"evaluate",
		EvaluateStart,
		EvaluateSuccess,
		EvaluateFailed,
		exprStr,
		nil,
		fr.Len(),
		func() (any, error) {
			return pl.processor.Evaluator().EvaluateByRow(fr, e, enclosing)
		},
	)
	if err != nil {
		return nil, err
	}
	return result.(*Result), nil
}

// RegisterSubscription registers a callback for a specific event type. It
// returns a unique ID that can be used to unregister the subscription later.
func (pl *Pipeline) RegisterSubscription(options RegisterSubscriptionOptions) string {
	pl.subMu.Lock()
	defer pl.subMu.Unlock()

	unsubscribe := pl.bus.Subscribe(string(options.Event), options.Callback)
	id := uuid.New().String()

	data := SubscriptionInfo{
		Id:          &id,
		Event:       options.Event,
		Label:       options.Label,
		Description: options.Description,
		Unsubscribe: unsubscribe,
	}
	pl.subscriptions[id] = &data

	pl.logger.Info("Registered event subscription",
		zap.String("id", id),
		zap.String("event", string(options.Event)))

	event := createEvent(SubscriptionRegister, "register_subscription", nil, nil, nil,
		map[string]any{"event": options.Event}, map[string]any{"subscriptionId": id}, nil, time.Now())
	pl.emitEvent(event)

	return id
}

// UnregisterSubscription removes a subscription by its ID. Unknown IDs are
// ignored.
func (pl *Pipeline) UnregisterSubscription(id string) {
	pl.subMu.Lock()
	defer pl.subMu.Unlock()

	info, ok := pl.subscriptions[id]
	if !ok {
		return
	}
	info.Unsubscribe()
	delete(pl.subscriptions, id)

	pl.logger.Info("Unregistered event subscription", zap.String("id", id))

	event := createEvent(SubscriptionUnregister, "unregister_subscription", nil, nil, nil,
		map[string]any{"subscriptionId": id}, nil, nil, time.Now())
	pl.emitEvent(event)
}

// Subscriptions returns a list of all currently active subscriptions.
func (pl *Pipeline) Subscriptions() []SubscriptionInfo {
	pl.subMu.RLock()
	defer pl.subMu.RUnlock()

	subs := make([]SubscriptionInfo, 0, len(pl.subscriptions))
	for _, sub := range pl.subscriptions {
		subs = append(subs, *sub)
	}
	return subs
}

// Close unsubscribes every remaining subscription.
func (pl *Pipeline) Close() {
	pl.subMu.Lock()
	defer pl.subMu.Unlock()

	for id, info := range pl.subscriptions {
		info.Unsubscribe()
		delete(pl.subscriptions, id)
	}
}
