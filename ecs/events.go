package ecs

// EventType names a gameplay event raised by systems during a frame.
type EventType string

const (
	EventEnemyHit       EventType = "enemy_hit"
	EventEnemyDefeated  EventType = "enemy_defeated"
	EventPlayerHit      EventType = "player_hit"
	EventPlayerDefeated EventType = "player_defeated"
	EventLevelUp        EventType = "level_up"
	EventAttackRejected EventType = "attack_rejected"
	EventAttackFired    EventType = "attack_fired"
	EventAttackCycled   EventType = "attack_cycled"
	EventRespawned      EventType = "respawned"
)

// Event is a generic ECS event payload.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
