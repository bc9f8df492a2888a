package host

import (
	"context"

	"github.com/llehouerou/empress/internal/engine"
)

// Subscribe registers handler for engine events. Handlers run in
// registration order on the dispatcher goroutine started by Run.
func (h *Host) Subscribe(handler func(engine.RawEvent)) (cancel func()) {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	id := h.nextSub
	h.nextSub++
	h.subs = append(h.subs, subscriber{id: id, fn: handler})

	return func() {
		h.subMu.Lock()
		defer h.subMu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// enqueueLocked appends an event for delivery. h.mu must be held so
// events keep the order of the state changes that caused them.
func (h *Host) enqueueLocked(ev engine.RawEvent) {
	h.pending = append(h.pending, ev)
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Run delivers events until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.wake:
		}

		h.mu.Lock()
		batch := h.pending
		h.pending = nil
		h.mu.Unlock()

		for _, ev := range batch {
			h.deliver(ev)
		}
	}
}

func (h *Host) deliver(ev engine.RawEvent) {
	h.subMu.Lock()
	subs := append([]subscriber(nil), h.subs...)
	h.subMu.Unlock()

	h.log.WithField("event", ev.Kind).Debug("dispatching event")
	for _, s := range subs {
		s.fn(ev)
	}
}
