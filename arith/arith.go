// Package arith provides the two increment flavors the firmware loop can run
// with. Go's uint32 addition already wraps, but the loop never relies on the
// operator directly: it names the behavior it wants.
package arith

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// ErrOverflow is the cause carried by every checked-mode overflow.
var ErrOverflow = errors.New("arith: 32-bit overflow")

// OverflowError reports the operands of a checked addition that did not fit
// in 32 bits.
type OverflowError struct {
	A, B uint32
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("arith: %d + %d overflows uint32", e.A, e.B)
}

// Unwrap returns ErrOverflow.
func (e *OverflowError) Unwrap() error {
	return ErrOverflow
}

// Mode selects how the loop increments its counters.
type Mode int

const (
	// Wrapping reduces every result modulo 2^32. It is the default.
	Wrapping Mode = iota

	// Checked aborts when a result does not fit in 32 bits.
	Checked
)

func (m Mode) String() string {
	switch m {
	case Wrapping:
		return "wrapping"
	case Checked:
		return "checked"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "wrapping" or "checked" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wrapping", "wrap":
		return Wrapping, nil
	case "checked", "check":
		return Checked, nil
	default:
		return Wrapping, fmt.Errorf("arith: unknown mode %q", s)
	}
}

// Set implements pflag.Value.
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

// Type implements pflag.Value.
func (m *Mode) Type() string {
	return "mode"
}

// WrappingAdd returns (a + b) mod 2^32.
func WrappingAdd(a, b uint32) uint32 {
	sum, _ := bits.Add32(a, b, 0)
	return sum
}

// WrappingInc returns (v + 1) mod 2^32.
func WrappingInc(v uint32) uint32 {
	return WrappingAdd(v, 1)
}

// CheckedAdd returns a + b and true, or 0 and false if the sum overflows.
func CheckedAdd(a, b uint32) (uint32, bool) {
	sum, carry := bits.Add32(a, b, 0)
	if carry != 0 {
		return 0, false
	}

	return sum, true
}

// CheckedInc returns v + 1 and true, or 0 and false when v is the maximum
// uint32.
func CheckedInc(v uint32) (uint32, bool) {
	return CheckedAdd(v, 1)
}

// Inc increments v according to the mode. In Checked mode an overflow is
// fatal: Inc panics with an *OverflowError, the hosted form of an abort.
func (m Mode) Inc(v uint32) uint32 {
	switch m {
	case Wrapping:
		return WrappingInc(v)
	case Checked:
		sum, ok := CheckedInc(v)
		if !ok {
			panic(&OverflowError{A: v, B: 1})
		}

		return sum
	default:
		panic(fmt.Sprintf("arith: unknown mode %d", int(m)))
	}
}
