package cell

// A Bank is a pair of counter cells, X and Y.
type Bank struct {
	x Cell
	y Cell
}

// NewBank creates a bank whose X cell starts at xInit and whose Y cell starts
// at zero.
func NewBank(xInit uint32) *Bank {
	return &Bank{
		x: Cell{name: "X", v: xInit},
		y: Cell{name: "Y"},
	}
}

// X returns a reference to the bank's X cell.
func (b *Bank) X() Ref {
	return Ref{c: &b.x}
}

// Y returns a reference to the bank's Y cell.
func (b *Bank) Y() Ref {
	return Ref{c: &b.y}
}

// ReadX returns the current value of X.
func (b *Bank) ReadX() uint32 {
	return ReadU32(b.X())
}

// ReadY returns the current value of Y.
func (b *Bank) ReadY() uint32 {
	return ReadU32(b.Y())
}

// WriteX sets X to v.
func (b *Bank) WriteX(v uint32) {
	WriteU32(b.X(), v)
}

// WriteY sets Y to v.
func (b *Bank) WriteY(v uint32) {
	WriteU32(b.Y(), v)
}

// Snapshot returns X and Y. The two loads are individually atomic but not a
// consistent pair if another writer runs in between.
func (b *Bank) Snapshot() (x, y uint32) {
	return b.ReadX(), b.ReadY()
}

var _ Accessor = (*Bank)(nil)
