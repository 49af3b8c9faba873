package timing

// Handler processes events. Events are plain values; handlers type-switch on
// them.
type Handler interface {
	Handle(event any) error
}

// TimeTeller exposes the current cycle.
type TimeTeller interface {
	CurrentTime() VTimeInCycle
}

// EventScheduler schedules events on the timeline.
type EventScheduler interface {
	TimeTeller
	Schedule(event ScheduledEvent)
}

// ScheduledEvent is the engine-facing wrapper of a user event.
type ScheduledEvent struct {
	// Event is delivered to Handler unchanged.
	Event any

	// Time is the cycle the event fires at.
	Time VTimeInCycle

	Handler Handler

	// IsSecondary events at a cycle run after all primary events at the
	// same cycle.
	IsSecondary bool
}

// TickEvent asks a ticking component to advance by one cycle.
type TickEvent struct {
	Time VTimeInCycle
}
