// Package timing is the simulated clock of a board: cycle-granular time, a
// serial event engine, and tick scheduling for components that advance once
// per clock cycle.
package timing
