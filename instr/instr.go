// Package instr implements the bit-exact encoding of a cell VM instruction
// word: an 8-bit opcode, a 2-bit/10-bit source operand, and a 2-bit/10-bit
// destination operand, packed MSB-first into a 32-bit word.
package instr

import "pondlife/bitfield"

const (
	// WordBits is the width, in bits, of a memory word.
	WordBits = 32
	// MemoryWords is the number of addressable words in a cell's memory.
	MemoryWords = 1024
	// AddressSize is log2(MemoryWords), the width of an address field.
	AddressSize = 10
)

// Mode is an addressing mode, selecting how an operand's address field is
// interpreted.
type Mode uint8

const (
	ModeNormal      Mode = 0b00
	ModeAccumulator Mode = 0b01
	ModeLiteral     Mode = 0b10
	ModeIndirect    Mode = 0b11
)

// Opcode identifies an instruction's operation.
type Opcode uint8

const (
	OpNoop Opcode = 0x00

	OpAdd     Opcode = 0x01
	OpSub     Opcode = 0x02
	OpMul     Opcode = 0x03
	OpDiv     Opcode = 0x04
	OpMod     Opcode = 0x05
	OpBand    Opcode = 0x06
	OpBor     Opcode = 0x07
	OpBxor    Opcode = 0x08
	OpLshift  Opcode = 0x09
	OpRshift  Opcode = 0x0A
	OpExchange Opcode = 0x0B

	OpBinvert Opcode = 0x0C
	OpZero    Opcode = 0x0D

	OpJump     Opcode = 0x0E
	OpSkip     Opcode = 0x0F
	OpSkipless Opcode = 0x10
	OpStop     Opcode = 0x11

	OpSniff  Opcode = 0x12
	OpRandom Opcode = 0x13
	OpFace   Opcode = 0x14

	OpLadar      Opcode = 0x15
	OpEtherRead  Opcode = 0x16
	OpEtherWrite Opcode = 0x17
	OpNudge      Opcode = 0x18
	OpBask       Opcode = 0x19
	OpHandoff    Opcode = 0x1A
	OpMove       Opcode = 0x1B
	OpProcure    Opcode = 0x1C
	OpBestow     Opcode = 0x1D
	OpTeach      Opcode = 0x1E

	OpCopy Opcode = 0x1F
)

// costs holds the energy debit for each recognized opcode. Any opcode byte
// absent from this table behaves as OpNoop (cost 0) — see Cost.
var costs = map[Opcode]uint64{
	OpNoop:       0,
	OpAdd:        1,
	OpSub:        1,
	OpMul:        1,
	OpDiv:        1,
	OpMod:        1,
	OpBand:       1,
	OpBor:        1,
	OpBxor:       1,
	OpLshift:     1,
	OpRshift:     1,
	OpExchange:   1,
	OpBinvert:    1,
	OpZero:       1,
	OpJump:       1,
	OpSkip:       1,
	OpSkipless:   1,
	OpStop:       1,
	OpSniff:      1,
	OpRandom:     1,
	OpFace:       1,
	OpLadar:      5,
	OpEtherRead:  5,
	OpEtherWrite: 5,
	OpNudge:      5,
	OpBask:       1,
	OpHandoff:    5,
	OpMove:       5,
	OpProcure:    5,
	OpBestow:     5,
	OpTeach:      5,
	OpCopy:       1,
}

// recognized reports whether op is a defined opcode value. Unrecognized
// values are treated as OpNoop everywhere else in this package.
func recognized(op Opcode) bool {
	_, ok := costs[op]
	return ok
}

// Normalize folds any opcode byte not in the opcode table to OpNoop, per
// spec: "any undefined opcode value is treated as NOOP."
func Normalize(op Opcode) Opcode {
	if recognized(op) {
		return op
	}
	return OpNoop
}

// Cost returns the energy debit for op, folding unrecognized opcodes to
// OpNoop's cost of zero.
func Cost(op Opcode) uint64 {
	return costs[Normalize(op)]
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Opcode   Opcode
	SrcMode  Mode
	SrcAddr  uint16
	DestMode Mode
	DestAddr uint16
}

// Decode unpacks a 32-bit instruction word MSB-first: 8-bit opcode, 2-bit
// src mode, 10-bit src address, 2-bit dest mode, 10-bit dest address.
func Decode(word uint32) Instruction {
	return Instruction{
		Opcode:   Opcode(bitfield.Range(word, 1, 8)),
		SrcMode:  Mode(bitfield.Range(word, 9, 10)),
		SrcAddr:  uint16(bitfield.Range(word, 11, 20)),
		DestMode: Mode(bitfield.Range(word, 21, 22)),
		DestAddr: uint16(bitfield.Range(word, 23, 32)),
	}
}

// Encode packs an Instruction back into a 32-bit word. Encode(Decode(w)) ==
// w for every word, and Decode(Encode(i)) == i for every in-range
// Instruction.
func (i Instruction) Encode() uint32 {
	return uint32(i.Opcode)<<24 |
		uint32(i.SrcMode)<<22 |
		uint32(i.SrcAddr&0x3FF)<<12 |
		uint32(i.DestMode)<<10 |
		uint32(i.DestAddr&0x3FF)
}
