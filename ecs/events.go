package ecs

// Event is a generic ECS event payload. Type names the payload for logging
// and filtering; Data carries the typed value.
type Event struct {
	Type string
	Data any
}

// EventQueue is a FIFO of events that lives for a single tick. Systems later
// in the schedule see everything pushed earlier in the same tick.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Items returns the queued events without consuming them.
func (q *EventQueue) Items() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}

// Emit queues a typed event for the rest of the tick.
func Emit[T any](w *World, typ string, data T) {
	w.Events().Push(Event{Type: typ, Data: data})
}

// Read returns, in arrival order, every queued event whose payload is a T.
func Read[T any](w *World) []T {
	var out []T
	for _, evt := range w.Events().Items() {
		if v, ok := evt.Data.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
