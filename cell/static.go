package cell

// XInit is the value the static X cell holds before its first write.
const XInit uint32 = 4294967295

// statics is initialized from constants only, so it is laid out as static
// data and holds its initial values before any code runs.
var statics = Bank{
	x: Cell{name: "X", v: XInit},
	y: Cell{name: "Y"},
}

// Static returns the process-wide cells as an Accessor.
func Static() *Bank {
	return &statics
}

// X returns a reference to the process-wide X cell.
func X() Ref {
	return statics.X()
}

// Y returns a reference to the process-wide Y cell.
func Y() Ref {
	return statics.Y()
}

// ReadX returns the current value of the process-wide X cell.
func ReadX() uint32 {
	return ReadU32(X())
}

// ReadY returns the current value of the process-wide Y cell.
func ReadY() uint32 {
	return ReadU32(Y())
}

// WriteX sets the process-wide X cell to v.
func WriteX(v uint32) {
	WriteU32(X(), v)
}

// WriteY sets the process-wide Y cell to v.
func WriteY(v uint32) {
	WriteU32(Y(), v)
}
