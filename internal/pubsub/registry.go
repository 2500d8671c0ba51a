// Package pubsub provides the in-memory notification channel registry: a
// process-wide multiplexer mapping topic strings to active subscribers.
//
// The registry is the only long-lived shared mutable structure in the
// fulfillment core. Publish never blocks on a slow subscriber and never
// holds the registry lock while pushing data; each subscriber is served
// through its own bounded channel, so one stalled connection cannot delay
// other subscribers or the caller that triggered the event.
package pubsub

import (
	"sync"
)

// DefaultSubscriberBuffer is the per-subscriber channel capacity used when
// the registry is created without an explicit buffer size.
const DefaultSubscriberBuffer = 16

// Message is one payload delivered to a subscriber together with the topic
// it was published on.
type Message struct {
	Topic   string
	Payload any
}

// Registry fans messages out to subscribers by topic. Safe for concurrent
// Subscribe, Unsubscribe and Publish. Publishing to a topic with zero
// subscribers is a no-op, which is the expected steady state when no client
// is currently watching.
type Registry struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
	buffer int
}

// NewRegistry creates a registry with the default per-subscriber buffer.
func NewRegistry() *Registry {
	return NewRegistryWithBuffer(DefaultSubscriberBuffer)
}

// NewRegistryWithBuffer creates a registry whose subscriptions hold up to
// buffer undelivered messages each. A non-positive buffer falls back to the
// default.
func NewRegistryWithBuffer(buffer int) *Registry {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	return &Registry{
		topics: make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers interest in a single topic and returns the
// subscription handle. The caller consumes Messages() and must Close the
// handle when the carrying connection goes away.
func (r *Registry) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		topic:    topic,
		ch:       make(chan Message, r.buffer),
		registry: r,
	}

	r.mu.Lock()
	subs, ok := r.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		r.topics[topic] = subs
	}
	subs[sub] = struct{}{}
	r.mu.Unlock()

	return sub
}

// Publish delivers the payload to every subscriber currently registered for
// the topic. Delivery to each handle preserves publish order for that
// handle; handles are otherwise independent. A subscriber whose buffer is
// full loses its own oldest message rather than delaying anyone else.
func (r *Registry) Publish(topic string, payload any) {
	r.mu.RLock()
	subs := make([]*Subscription, 0, len(r.topics[topic]))
	for sub := range r.topics[topic] {
		subs = append(subs, sub)
	}
	r.mu.RUnlock()

	msg := Message{Topic: topic, Payload: payload}
	for _, sub := range subs {
		sub.deliver(msg)
	}
}

// Unsubscribe removes the subscription from the registry and closes its
// channel. Idempotent and safe to call on an already-closed handle, so it
// can be wired directly into a connection-closed callback.
func (r *Registry) Unsubscribe(sub *Subscription) {
	if sub != nil {
		sub.Close()
	}
}

// SubscriberCount returns the number of active subscriptions for a topic.
func (r *Registry) SubscriberCount(topic string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.topics[topic])
}

// remove detaches a subscription from the topic map.
func (r *Registry) remove(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs, ok := r.topics[sub.topic]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(r.topics, sub.topic)
	}
}

// Subscription is a handle for one subscriber on one topic.
type Subscription struct {
	topic    string
	ch       chan Message
	registry *Registry

	// mu serializes deliver and Close so a message is never sent on a
	// closed channel and per-handle delivery order is preserved.
	mu     sync.Mutex
	closed bool
}

// Topic returns the topic the subscription is registered on.
func (s *Subscription) Topic() string {
	return s.topic
}

// Messages returns the channel carrying published payloads. The channel is
// closed by Close; range over it or select against it together with the
// transport's done signal.
func (s *Subscription) Messages() <-chan Message {
	return s.ch
}

// Close removes the subscription from the registry and closes the message
// channel. Idempotent.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	s.registry.remove(s)
}

// deliver enqueues a message without ever blocking: when the buffer is full
// the subscriber's own oldest message is dropped to make room. Closed
// handles silently discard.
func (s *Subscription) deliver(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	for {
		select {
		case s.ch <- msg:
			return
		default:
		}

		select {
		case <-s.ch:
		default:
		}
	}
}
