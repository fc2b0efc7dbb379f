package event

import (
	"errors"
	"sync"
)

// Errors returned by the bus.
var (
	ErrInvalidTopic        = errors.New("invalid topic")
	ErrNilHandler          = errors.New("handler is nil")
	ErrSubscriptionUnknown = errors.New("subscription not found")
)

// Handler receives published events.
type Handler func(ev Event)

// Logger receives reports of recovered handler panics.
type Logger interface {
	Error(msg string, args ...any)
}

// Subscription identifies a registered handler.
type Subscription struct {
	id      uint64
	pattern Topic
}

// Pattern returns the topic pattern the subscription listens on.
func (s Subscription) Pattern() Topic {
	return s.pattern
}

type subscriber struct {
	Subscription
	handler Handler
}

// Bus delivers events to subscribers whose pattern matches the topic.
// It is safe for concurrent use; handlers may subscribe or unsubscribe
// while an event is being delivered.
type Bus struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID uint64
	logger Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used to report handler panics.
func WithLogger(l Logger) BusOption {
	return func(b *Bus) {
		b.logger = l
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for every topic matching pattern.
func (b *Bus) Subscribe(pattern Topic, handler Handler) (Subscription, error) {
	if !pattern.IsValid() {
		return Subscription{}, ErrInvalidTopic
	}
	if handler == nil {
		return Subscription{}, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := Subscription{id: b.nextID, pattern: pattern}
	b.subs = append(b.subs, subscriber{Subscription: sub, handler: handler})
	return sub, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == sub.id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionUnknown
}

// Publish delivers ev to all matching subscribers and returns the number of
// handlers that ran.
func (b *Bus) Publish(ev Event) (int, error) {
	if !ev.Topic.IsValid() {
		return 0, ErrInvalidTopic
	}

	b.mu.RLock()
	matched := make([]subscriber, 0, len(b.subs))
	for _, s := range b.subs {
		if ev.Topic.Matches(s.pattern) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	for _, s := range matched {
		b.deliver(s, ev)
	}
	return len(matched), nil
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) deliver(s subscriber, ev Event) {
	defer func() {
		if r := recover(); r != nil && b.logger != nil {
			b.logger.Error("event handler for %s panicked on %s: %v", s.pattern, ev.Topic, r)
		}
	}()
	s.handler(ev)
}
