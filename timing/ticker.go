package timing

import (
	"fmt"
	"sync"
)

// A Ticker updates its state once per cycle. Tick returns whether progress
// was made; a ticker that made no progress stops being ticked until woken.
type Ticker interface {
	Tick() bool
}

// TickScheduler schedules tick events for a handler, at most one per cycle.
type TickScheduler struct {
	lock      sync.Mutex
	handler   Handler
	engine    EventScheduler
	secondary bool

	hasNext  bool
	nextTick VTimeInCycle
}

// NewTickScheduler creates a scheduler for tick events.
func NewTickScheduler(handler Handler, engine EventScheduler) *TickScheduler {
	return &TickScheduler{
		handler: handler,
		engine:  engine,
	}
}

// TickNow schedules a tick at the current cycle.
func (t *TickScheduler) TickNow() {
	t.scheduleAt(t.engine.CurrentTime())
}

// TickLater schedules a tick at the next cycle.
func (t *TickScheduler) TickLater() {
	t.scheduleAt(t.engine.CurrentTime() + 1)
}

func (t *TickScheduler) scheduleAt(time VTimeInCycle) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.hasNext && t.nextTick >= time {
		return
	}

	t.hasNext = true
	t.nextTick = time

	t.engine.Schedule(ScheduledEvent{
		Event:       &TickEvent{Time: time},
		Time:        time,
		Handler:     t.handler,
		IsSecondary: t.secondary,
	})
}

// CurrentTime returns the engine's current cycle.
func (t *TickScheduler) CurrentTime() VTimeInCycle {
	return t.engine.CurrentTime()
}

// TickingComponent advances a Ticker once per cycle for as long as the
// ticker makes progress.
type TickingComponent struct {
	*HookableBase
	*TickScheduler

	name   string
	ticker Ticker
}

// NewTickingComponent creates a ticking component.
func NewTickingComponent(
	name string,
	engine EventScheduler,
	ticker Ticker,
) *TickingComponent {
	tc := &TickingComponent{
		HookableBase: NewHookableBase(),
		name:         name,
		ticker:       ticker,
	}
	tc.TickScheduler = NewTickScheduler(tc, engine)

	return tc
}

// Name returns the component name.
func (c *TickingComponent) Name() string {
	return c.name
}

// Handle ticks the ticker and schedules the next tick if it made progress.
func (c *TickingComponent) Handle(event any) error {
	if _, ok := event.(*TickEvent); !ok {
		return fmt.Errorf("timing: %s cannot handle %T", c.name, event)
	}

	if c.ticker.Tick() {
		c.TickLater()
	}

	return nil
}
