// Package dice rolls the two six-sided dice used by every skill check and
// decides the outcome.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Sides is the number of faces on each die.
const Sides = 6

// Source supplies randomness. Intn returns a value in [0, n).
type Source interface {
	Intn(n int) int
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewSeed generates a seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Pair is one roll of two dice.
type Pair struct {
	Die1 int `json:"die1"`
	Die2 int `json:"die2"`
}

// Sum returns the total of both dice.
func (p Pair) Sum() int { return p.Die1 + p.Die2 }

func (p Pair) String() string {
	return fmt.Sprintf("%d+%d=%d", p.Die1, p.Die2, p.Sum())
}

// Roller draws pairs of dice from a Source.
type Roller struct {
	src Source
}

// NewRoller returns a Roller backed by src.
func NewRoller(src Source) *Roller {
	return &Roller{src: src}
}

// Roll draws two independent dice in [1, Sides].
func (r *Roller) Roll() Pair {
	return Pair{
		Die1: r.src.Intn(Sides) + 1,
		Die2: r.src.Intn(Sides) + 1,
	}
}

// Outcome is the result of a check.
type Outcome int

const (
	Failure Outcome = iota
	Success
)

func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}
	return "Failure"
}

// MarshalText encodes the outcome as its name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Success":
		*o = Success
	case "Failure":
		*o = Failure
	default:
		return fmt.Errorf("unknown outcome %q", b)
	}
	return nil
}

// Decide applies the check rule: double six always succeeds, double one
// always fails, otherwise the dice plus skill must reach target.
func Decide(p Pair, skill, target int) Outcome {
	switch {
	case p.Die1 == Sides && p.Die2 == Sides:
		return Success
	case p.Die1 == 1 && p.Die2 == 1:
		return Failure
	case p.Sum()+skill >= target:
		return Success
	default:
		return Failure
	}
}
