package event

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dshills/formstorm/internal/event/topic"
)

// Handler processes a delivered envelope. Handlers must not block for
// long; slow consumers back up the async queue.
type Handler func(Envelope)

// Subscription is a handle returned by Subscribe, used to unsubscribe.
type Subscription struct {
	id      uint64
	pattern topic.Topic
	handler Handler
	active  atomic.Bool
}

// Pattern returns the topic pattern the subscription matches.
func (s *Subscription) Pattern() topic.Topic {
	return s.pattern
}

// Stats reports bus activity counters.
type Stats struct {
	Published   uint64
	Delivered   uint64
	Dropped     uint64
	Panics      uint64
	Subscribers int
	QueueDepth  int
}

// Bus routes envelopes to topic-pattern subscribers. Publish queues the
// envelope for delivery by a background worker; PublishSync delivers
// in the caller's goroutine. Both are safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64

	queue       chan Envelope
	done        chan struct{}
	workers     sync.WaitGroup
	workerCount int
	running     atomic.Bool

	published atomic.Uint64
	delivered atomic.Uint64
	dropped   atomic.Uint64
	panics    atomic.Uint64
}

const (
	defaultQueueSize   = 1024
	defaultWorkerCount = 1
)

// Option configures a Bus.
type Option func(*busConfig)

type busConfig struct {
	queueSize   int
	workerCount int
}

// WithQueueSize sets the async delivery queue capacity.
func WithQueueSize(n int) Option {
	return func(c *busConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}

// WithWorkerCount sets the number of delivery goroutines. More than one
// worker relaxes cross-event ordering.
func WithWorkerCount(n int) Option {
	return func(c *busConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// NewBus creates a bus. Call Start before publishing.
func NewBus(opts ...Option) *Bus {
	cfg := busConfig{queueSize: defaultQueueSize, workerCount: defaultWorkerCount}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Bus{
		subs:        make(map[uint64]*Subscription),
		queue:       make(chan Envelope, cfg.queueSize),
		done:        make(chan struct{}),
		workerCount: cfg.workerCount,
	}
}

// Start launches the delivery workers.
func (b *Bus) Start() error {
	if b.running.Swap(true) {
		return ErrBusAlreadyRunning
	}
	for i := 0; i < b.workerCount; i++ {
		b.workers.Add(1)
		go b.worker()
	}
	return nil
}

func (b *Bus) worker() {
	defer b.workers.Done()
	for {
		select {
		case env := <-b.queue:
			b.deliver(env)
		case <-b.done:
			// Drain what is already queued before exiting.
			for {
				select {
				case env := <-b.queue:
					b.deliver(env)
				default:
					return
				}
			}
		}
	}
}

// Stop shuts down delivery, draining queued envelopes. It returns when
// the workers exit or the context is cancelled.
func (b *Bus) Stop(ctx context.Context) error {
	if !b.running.Swap(false) {
		return ErrBusNotRunning
	}
	close(b.done)

	finished := make(chan struct{})
	go func() {
		b.workers.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the bus is accepting envelopes.
func (b *Bus) IsRunning() bool {
	return b.running.Load()
}

// Subscribe registers a handler for every envelope whose topic matches
// the pattern.
func (b *Bus) Subscribe(pattern topic.Topic, h Handler) (*Subscription, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	sub := &Subscription{id: b.nextID, pattern: pattern, handler: h}
	sub.active.Store(true)
	b.subs[sub.id] = sub
	return sub, nil
}

// Unsubscribe removes a subscription. Envelopes already queued may
// still be delivered to other subscribers but not to this one.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrNotSubscribed
	}
	sub.active.Store(false)

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub.id]; !ok {
		return ErrNotSubscribed
	}
	delete(b.subs, sub.id)
	return nil
}

// Publish queues an envelope for asynchronous delivery. A full queue
// drops the envelope rather than blocking the publisher.
func (b *Bus) Publish(env Envelope) error {
	if !b.running.Load() {
		return ErrBusNotRunning
	}
	b.published.Add(1)
	select {
	case b.queue <- env:
		return nil
	default:
		b.dropped.Add(1)
		return nil
	}
}

// PublishSync delivers an envelope to all matching subscribers in the
// caller's goroutine, returning when every handler has run.
func (b *Bus) PublishSync(env Envelope) error {
	if !b.running.Load() {
		return ErrBusNotRunning
	}
	b.published.Add(1)
	b.deliver(env)
	return nil
}

func (b *Bus) deliver(env Envelope) {
	b.mu.RLock()
	matched := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if env.Topic.Matches(sub.pattern) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range matched {
		if !sub.active.Load() {
			continue
		}
		b.invoke(sub.handler, env)
	}
}

// invoke runs a handler, isolating the bus from handler panics.
func (b *Bus) invoke(h Handler, env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
		}
	}()
	h(env)
	b.delivered.Add(1)
}

// Stats returns a snapshot of the activity counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	subscribers := len(b.subs)
	b.mu.RUnlock()
	return Stats{
		Published:   b.published.Load(),
		Delivered:   b.delivered.Load(),
		Dropped:     b.dropped.Load(),
		Panics:      b.panics.Load(),
		Subscribers: subscribers,
		QueueDepth:  len(b.queue),
	}
}
