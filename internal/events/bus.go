// Package events carries change notifications from the catalog handlers to
// any number of live event-stream subscribers.
package events

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("subscription closed")

// Bus fans every published message out to all registered subscribers.
// Each subscriber owns an unbounded FIFO queue, so Publish never blocks
// and a slow consumer only grows its own queue.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

func (b *Bus) Publish(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		sub.push(msg)
	}
}

func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{
		bus:   b,
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Subscribers reports how many subscriptions are currently registered.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

type Subscription struct {
	bus    *Bus
	mu     sync.Mutex
	queue  []string
	ready  chan struct{}
	done   chan struct{}
	closed bool
}

func (s *Subscription) push(msg string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, msg)
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Next returns the oldest queued message, blocking until one is published,
// the context is cancelled, or the subscription is closed. Messages come
// out in publish order. After Close, Next reports ErrClosed even if
// messages were still queued.
func (s *Subscription) Next(ctx context.Context) (string, error) {
	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return "", ErrClosed
		}
		if len(s.queue) > 0 {
			msg := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return msg, nil
		}
		s.mu.Unlock()

		select {
		case <-s.ready:
		case <-s.done:
			return "", ErrClosed
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Close unregisters the subscription and discards anything still queued
// for it: a disconnected consumer stops consuming immediately. Other
// subscribers and their queues are unaffected. Safe to call more than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.queue = nil
	close(s.done)
	s.mu.Unlock()

	s.bus.mu.Lock()
	delete(s.bus.subs, s)
	s.bus.mu.Unlock()
}
