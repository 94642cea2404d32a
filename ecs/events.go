package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventAnimationState carries an AnimationStateEvent.
	EventAnimationState = "animation_state"
	// EventCameraFollow carries a bool: the new follow flag.
	EventCameraFollow = "camera_follow"
	// EventZone carries a ZoneEvent.
	EventZone = "zone"
)

// AnimationStateEvent is emitted when the locomotion state changes.
type AnimationStateEvent struct {
	Entity Entity
	From   string
	To     string
}

// ZoneEvent is emitted when an entity crosses a proximity zone boundary.
type ZoneEvent struct {
	Zone    Entity
	Subject Entity
	Entered bool
}

// EventQueue is a simple FIFO queue, flushed at the end of every tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without removing them.
func (q *EventQueue) Peek() []Event {
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
