package timing

// An Engine keeps the simulation running.
type Engine interface {
	Hookable
	EventScheduler

	// Run processes events until none are left.
	Run() error

	// Pause stops dispatching events until Continue is called.
	Pause()

	// Continue resumes a paused engine.
	Continue()
}
