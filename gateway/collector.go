package gateway

import (
	"context"
	"sync"

	"github.com/cordialhq/cordial/discord"
)

// collectorSet holds the registered event callbacks. A callback
// returning false is dropped from the set.
type collectorSet struct {
	mu  sync.Mutex
	fns []func(Event) bool
}

func (c *collectorSet) add(fn func(Event) bool) {
	c.mu.Lock()
	c.fns = append(c.fns, fn)
	c.mu.Unlock()
}

func (c *collectorSet) offer(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.fns[:0]
	for _, fn := range c.fns {
		if fn(ev) {
			kept = append(kept, fn)
		}
	}
	c.fns = kept
}

func (c *collectorSet) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fns)
}

// Collector receives the session events that pass a filter, decoupled
// from the session's main Events channel.
type Collector struct {
	ch   chan Event
	stop chan struct{}
	once sync.Once
}

// Collect registers a filter and streams matching events until Close.
// A slow consumer loses events rather than stalling the session.
func (s *Session) Collect(filter func(Event) bool) *Collector {
	c := &Collector{
		ch:   make(chan Event, 16),
		stop: make(chan struct{}),
	}
	s.collectors.add(func(ev Event) bool {
		select {
		case <-c.stop:
			return false
		default:
		}
		if filter == nil || filter(ev) {
			select {
			case c.ch <- ev:
			default:
			}
		}
		return true
	})
	return c
}

// Events streams the matching events.
func (c *Collector) Events() <-chan Event { return c.ch }

// Close unregisters the collector. Safe to call more than once.
func (c *Collector) Close() {
	c.once.Do(func() { close(c.stop) })
}

// WaitFor blocks until an event passes the filter, the context ends or
// the session stops.
func (s *Session) WaitFor(ctx context.Context, filter func(Event) bool) (Event, error) {
	c := s.Collect(filter)
	defer c.Close()
	select {
	case ev := <-c.ch:
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return nil, ErrClosed
	}
}

// WaitForMessage waits for the next created message that passes the
// filter, a nil filter matching everything.
func (s *Session) WaitForMessage(ctx context.Context, filter func(*discord.Message) bool) (*discord.Message, error) {
	ev, err := s.WaitFor(ctx, func(ev Event) bool {
		mc, ok := ev.(*MessageCreateEvent)
		if !ok {
			return false
		}
		return filter == nil || filter(&mc.Message)
	})
	if err != nil {
		return nil, err
	}
	return &ev.(*MessageCreateEvent).Message, nil
}

// WaitForInteraction waits for the next interaction that passes the
// filter, a nil filter matching everything.
func (s *Session) WaitForInteraction(ctx context.Context, filter func(*discord.Interaction) bool) (*discord.Interaction, error) {
	ev, err := s.WaitFor(ctx, func(ev Event) bool {
		ic, ok := ev.(*InteractionCreateEvent)
		if !ok {
			return false
		}
		return filter == nil || filter(&ic.Interaction)
	})
	if err != nil {
		return nil, err
	}
	return &ev.(*InteractionCreateEvent).Interaction, nil
}
