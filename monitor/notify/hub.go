// Package notify fans change sets out to in-process subscribers and renders
// them as server-sent events.
package notify

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/pkg/util"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

var (
	ErrNoSubscribers     = errors.New("no subscribers")
	ErrSubscriberLagging = errors.New("subscriber buffer full, event dropped")
)

const DefaultBuffer = 64

type Event struct {
	ID      uint64
	Name    string
	Payload domain.ChangeSet
	SentAt  time.Time
}

// Subscription receives events on C until it is unsubscribed, after which
// Done is closed. C itself is never closed.
type Subscription struct {
	ID   string
	C    <-chan Event
	ch   chan Event
	done chan struct{}
	once atomic.Bool
}

func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Hub implements domain.Publisher.
type Hub struct {
	subs   *util.GenericMap[string, *Subscription]
	seq    atomic.Uint64
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   util.NewGenericMap[string, *Subscription](),
		buffer: buffer,
	}
}

func (h *Hub) Subscribe() *Subscription {
	ch := make(chan Event, h.buffer)
	sub := &Subscription{
		ID:   xid.New().String(),
		C:    ch,
		ch:   ch,
		done: make(chan struct{}),
	}
	h.subs.Store(sub.ID, sub)
	return sub
}

func (h *Hub) Unsubscribe(id string) {
	sub, ok := h.subs.LoadAndDelete(id)
	if !ok {
		return
	}
	if sub.once.CompareAndSwap(false, true) {
		close(sub.done)
	}
}

func (h *Hub) Subscribers() int {
	return h.subs.Len()
}

// Publish delivers the event to every subscriber without blocking. A
// subscriber whose buffer is full misses this event.
func (h *Hub) Publish(ctx context.Context, event string, payload domain.ChangeSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ev := Event{
		ID:      h.seq.Add(1),
		Name:    event,
		Payload: payload,
		SentAt:  time.Now(),
	}
	delivered, dropped := 0, 0
	h.subs.Range(func(_ string, sub *Subscription) bool {
		select {
		case sub.ch <- ev:
			delivered++
		default:
			dropped++
		}
		return true
	})
	switch {
	case delivered == 0 && dropped == 0:
		return ErrNoSubscribers
	case dropped > 0:
		return errors.Wrapf(ErrSubscriberLagging, "%d of %d subscribers", dropped, delivered+dropped)
	}
	return nil
}
