// Package cell owns the two process-wide counter cells, X and Y.
//
// The cells live in package-level storage and are never handed out. Code
// outside this package reaches them only through ReadU32 and WriteU32 (or the
// ReadX/WriteX style shorthands built on them), which perform exactly one
// 32-bit atomic load or store each. That single memory operation is the only
// place the storage is touched directly.
//
// Each individual read or write is race free, so a second thread of control
// (an interrupt handler, another goroutine) never observes a torn value. A
// read followed by a write is not atomic as a whole: a read-modify-write
// performed by more than one writer still needs an outer discipline (a lock,
// a compare-and-swap loop, or interrupts disabled around the sequence), and
// that discipline belongs in this package, not in its callers.
package cell

import "sync/atomic"

// A Cell is one 32-bit counter storage location. Its fields are unexported so
// a Cell can only be created by this package.
type Cell struct {
	name string
	v    uint32
}

// Name returns the conventional name of the cell, "X" or "Y".
func (c *Cell) Name() string {
	return c.name
}

// A Ref denotes one specific cell. Refs are only created by this package, so
// every valid Ref points at storage that never moves and has exactly one
// writer pathway: WriteU32. The zero Ref is not a valid reference.
type Ref struct {
	c *Cell
}

// Name returns the name of the referenced cell.
func (r Ref) Name() string {
	return r.mustCell().name
}

func (r Ref) mustCell() *Cell {
	if r.c == nil {
		panic("cell: use of zero Ref")
	}

	return r.c
}

// ReadU32 returns the value most recently written to the referenced cell, or
// its initial value if it was never written.
func ReadU32(r Ref) uint32 {
	return atomic.LoadUint32(&r.mustCell().v)
}

// WriteU32 sets the referenced cell to v.
func WriteU32(r Ref, v uint32) {
	atomic.StoreUint32(&r.mustCell().v, v)
}

// Accessor is the read/write surface of a pair of counter cells.
type Accessor interface {
	ReadX() uint32
	ReadY() uint32
	WriteX(v uint32)
	WriteY(v uint32)
}
