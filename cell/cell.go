// Package cell implements the pond's basic unit of life: a fixed-size
// memory buffer, an optional lineage soul, and an energy balance.
//
// A Cell's memory is exclusively owned by the Cell; the only other actors
// permitted to mutate it are the vm.Interpreter running on its own behalf,
// the pond acting on behalf of a neighbour through NUDGE, TEACH, or MOVE,
// and the pond's lightning strike, which refills it with random words.
package cell

import (
	"pondlife/direction"
	"pondlife/instr"
)

// Soul is a cell's 32-bit lineage identifier. Two cells are the same
// lineage ("soulmates") iff their souls are both present and equal.
// Souls are copied by value, matching spec.md's "immutable value-objects."
type Soul struct {
	Present bool
	Value   uint32
}

// SameLineage reports whether s and other are both present and equal.
func (s Soul) SameLineage(other Soul) bool {
	return s.Present && other.Present && s.Value == other.Value
}

// Cell is one grid site: memory, a lineage soul, and an energy balance.
type Cell struct {
	Memory [instr.MemoryWords]uint32
	Soul   Soul
	Energy uint64

	// Inanimate marks a cell that never runs — a sun.
	Inanimate bool

	// Pointer, Accumulator, and Direction are the interpreter's resumable
	// state. A vm.Interpreter borrows them for one Run and writes them back
	// so the cell picks up where it left off the next time it is scheduled.
	Pointer     uint16
	Accumulator uint32
	Direction   direction.Direction
}

// Alive reports whether this cell is running (has a soul and is not
// inanimate).
func (c *Cell) Alive() bool {
	return !c.Inanimate && c.Soul.Present
}

// CanAccess reports whether this cell may write into other: true iff other
// is not alive, or the two cells share a soul.
func (c *Cell) CanAccess(other *Cell) bool {
	return !other.Alive() || c.Soul.SameLineage(other.Soul)
}

// Checksum sums the cell's 1024 big-endian 32-bit words modulo 2^32.
func (c *Cell) Checksum() uint32 {
	var sum uint32
	for _, w := range c.Memory {
		sum += w
	}
	return sum
}

// Colour returns the 4 bytes of the cell's checksum, big-endian. An
// inanimate cell (a sun) always reports opaque white: its all-zero memory
// checksum would otherwise be meaningless.
func (c *Cell) Colour() [4]byte {
	if c.Inanimate {
		return [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
	}
	sum := c.Checksum()
	return [4]byte{
		byte(sum >> 24),
		byte(sum >> 16),
		byte(sum >> 8),
		byte(sum),
	}
}

// Kill clears the cell's soul and zeroes its energy. A killed cell is not
// alive and must be dropped from the pond's alive-set by the caller.
func (c *Cell) Kill() {
	c.Soul = Soul{}
	c.Energy = 0
}

// NewSun builds an inanimate cell that never runs but contributes to the
// pond's light field.
func NewSun() *Cell {
	return &Cell{Inanimate: true}
}
