package firmware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sarchlab/bare0/cell"
)

// ErrInvariant is matched by every *InvariantError.
var ErrInvariant = errors.New("firmware: invariant check failed")

// Invariant selects the diagnostic check evaluated after each step.
type Invariant int

const (
	// InvariantNone skips the check. It is the steady-state configuration.
	InvariantNone Invariant = iota

	// InvariantEqual requires Local == X == Y.
	InvariantEqual

	// InvariantYLagsByOne requires X == Y + 1. Under the loop's step order Y
	// is always assigned from X, so this check fails on the first step. It is
	// kept as a labelled alternate scenario.
	InvariantYLagsByOne
)

func (i Invariant) String() string {
	switch i {
	case InvariantNone:
		return "none"
	case InvariantEqual:
		return "equal"
	case InvariantYLagsByOne:
		return "y-lags-by-one"
	default:
		return fmt.Sprintf("Invariant(%d)", int(i))
	}
}

// ParseInvariant converts a name produced by Invariant.String back into an
// Invariant.
func ParseInvariant(s string) (Invariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return InvariantNone, nil
	case "equal":
		return InvariantEqual, nil
	case "y-lags-by-one":
		return InvariantYLagsByOne, nil
	default:
		return InvariantNone, fmt.Errorf("firmware: unknown invariant %q", s)
	}
}

// Set implements pflag.Value.
func (i *Invariant) Set(s string) error {
	parsed, err := ParseInvariant(s)
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *Invariant) UnmarshalText(text []byte) error {
	return i.Set(string(text))
}

// Type implements pflag.Value.
func (i *Invariant) Type() string {
	return "invariant"
}

// Check evaluates the invariant against the local counter and the cells. The
// cells are read through the accessor only.
func (i Invariant) Check(local uint32, acc cell.Accessor) error {
	x, y := acc.ReadX(), acc.ReadY()

	var ok bool
	switch i {
	case InvariantNone:
		return nil
	case InvariantEqual:
		ok = local == x && x == y
	case InvariantYLagsByOne:
		ok = local == x && x == y+1
	default:
		panic(fmt.Sprintf("firmware: unknown invariant %d", int(i)))
	}

	if ok {
		return nil
	}

	return &InvariantError{Invariant: i, Local: local, X: x, Y: y}
}

// InvariantError records the state observed when a check failed.
type InvariantError struct {
	Invariant Invariant
	Local     uint32
	X         uint32
	Y         uint32
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf(
		"firmware: invariant %s failed: local=%d X=%d Y=%d",
		e.Invariant, e.Local, e.X, e.Y)
}

// Is reports whether target is ErrInvariant.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}
