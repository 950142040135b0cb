// Package vm implements the cell virtual machine: a per-cell
// fetch-decode-execute interpreter that runs until it needs the pond to
// resolve an environment-dependent action, at which point it raises a
// Suspension and hands control back to its caller.
package vm

import (
	"math"
	"math/rand"

	"pondlife/arith"
	"pondlife/cell"
	"pondlife/direction"
	"pondlife/instr"
)

// Scent identifies the kind of thing a SNIFF instruction asks about.
// Numeric values are this implementation's own assignment — spec.md leaves
// them as an external interface constant without fixing the encoding.
type Scent uint32

const (
	ScentStartEnergy   Scent = 1
	ScentCurrentEnergy Scent = 2
	ScentPi            Scent = 3
	ScentE             Scent = 4
	ScentChecksum      Scent = 5
	ScentSoul          Scent = 6
	ScentLightLevel    Scent = 7
)

// BigPi and BigE are floor(pi*1e9) and floor(e*1e9), the fixed-point
// constants SNIFF(PI) and SNIFF(E) report.
const (
	BigPi = uint32(3141592653)
	BigE  = uint32(2718281828)
)

func init() {
	// Sanity-pin the constants to their defining formula so a future
	// change to the literals above cannot silently drift from spec.md.
	if want := uint32(math.Floor(math.Pi * 1e9)); want != BigPi {
		panic("vm: BigPi does not match floor(pi*1e9)")
	}
	if want := uint32(math.Floor(math.E * 1e9)); want != BigE {
		panic("vm: BigE does not match floor(e*1e9)")
	}
}

// LadarResult classifies what a LADAR scan found.
type LadarResult uint32

const (
	LadarNothing   LadarResult = 0
	LadarHeathen   LadarResult = 1
	LadarSoulmate  LadarResult = 2
)

// EventKind tags the reason an interpreter suspended.
type EventKind int

const (
	EventSniffLight EventKind = iota
	EventLadar
	EventNudge
	EventTeach
	EventBask
	EventProcure
	EventBestow
	EventMove
	EventHandoff
	EventStop
	EventOutOfEnergy
	EventFinishedBook
)

func (k EventKind) String() string {
	switch k {
	case EventSniffLight:
		return "SniffLight"
	case EventLadar:
		return "Ladar"
	case EventNudge:
		return "Nudge"
	case EventTeach:
		return "Teach"
	case EventBask:
		return "Bask"
	case EventProcure:
		return "Procure"
	case EventBestow:
		return "Bestow"
	case EventMove:
		return "Move"
	case EventHandoff:
		return "Handoff"
	case EventStop:
		return "Stop"
	case EventOutOfEnergy:
		return "OutOfEnergy"
	case EventFinishedBook:
		return "FinishedBook"
	default:
		return "Unknown"
	}
}

// Suspension is the tagged event an interpreter raises when it needs the
// pond to resolve an environment-dependent action. Only the fields
// relevant to Kind are populated.
type Suspension struct {
	Kind EventKind

	WordIndex uint16 // NUDGE, TEACH: target word index
	Value     uint32 // NUDGE, TEACH: value to write

	Amount uint64 // PROCURE, BESTOW

	Cutoff uint16 // MOVE: words to carry
	Fuel   uint64 // MOVE: energy budget for the move

	// Callback writes the pond-resolved value back into the instruction's
	// destination operand, honouring the same addressing-mode write rules
	// as every other instruction. Set only for EventSniffLight and
	// EventLadar.
	Callback func(uint32)
}

// Interpreter is a resumable cell VM. It borrows a cell's memory and ether
// for the duration of a Run call and must be written back by the caller
// (see WriteBack) so execution can resume on the next tick that selects
// this cell.
type Interpreter struct {
	memory *[instr.MemoryWords]uint32
	ether  map[uint16]uint32

	Energy      uint64
	Soul        cell.Soul
	Pointer     uint16
	Accumulator uint32
	Direction   direction.Direction
	StartEnergy uint64
}

// New builds an Interpreter over c's memory, resuming from c's saved
// pointer/accumulator/direction and snapshotting its energy as the
// invocation's start energy (per spec.md §3, "immutable snapshot of its
// start energy").
func New(c *cell.Cell, ether map[uint16]uint32) *Interpreter {
	return &Interpreter{
		memory:      &c.Memory,
		ether:       ether,
		Energy:      c.Energy,
		Soul:        c.Soul,
		Pointer:     c.Pointer,
		Accumulator: c.Accumulator,
		Direction:   c.Direction,
		StartEnergy: c.Energy,
	}
}

// WriteBack copies the interpreter's resumable state back onto c. The pond
// calls this whenever the cell's turn ends or it hands off, so execution
// resumes from the saved state the next time the cell is scheduled; events
// that continue the same interpreter need no write-back in between.
func (ip *Interpreter) WriteBack(c *cell.Cell) {
	c.Energy = ip.Energy
	c.Pointer = ip.Pointer
	c.Accumulator = ip.Accumulator
	c.Direction = ip.Direction
}

// Run executes instructions until one needs the pond's help, returning the
// Suspension describing what it needs. Run may execute many instructions
// internally (NOOP, arithmetic, control flow, RANDOM, FACE, COPY, internal
// SNIFF, ether access) before it has to suspend.
func (ip *Interpreter) Run() Suspension {
	for {
		if int(ip.Pointer) >= instr.MemoryWords {
			return Suspension{Kind: EventFinishedBook}
		}

		word := ip.memory[ip.Pointer]
		d := instr.Decode(word)
		op := instr.Normalize(d.Opcode)
		ip.Pointer++

		cost := instr.Cost(op)
		if ip.Energy < cost {
			ip.Energy = 0
			return Suspension{Kind: EventOutOfEnergy}
		}
		ip.Energy -= cost

		switch op {
		case instr.OpNoop:
			// no-op

		case instr.OpAdd, instr.OpSub, instr.OpMul, instr.OpDiv, instr.OpMod,
			instr.OpBand, instr.OpBor, instr.OpBxor, instr.OpLshift, instr.OpRshift:
			ip.execBinary(op, d)

		case instr.OpExchange:
			ip.execExchange(d)

		case instr.OpBinvert:
			v := arith.Binvert(ip.getValue(d.SrcMode, d.SrcAddr))
			ip.writeValue(d.DestMode, d.DestAddr, v)

		case instr.OpZero:
			ip.writeValue(d.DestMode, d.DestAddr, 0)

		case instr.OpJump:
			if ip.getValue(d.SrcMode, d.SrcAddr) != 0 {
				dest := ip.getValue(d.DestMode, d.DestAddr)
				ip.Pointer = uint16(dest % instr.MemoryWords)
			}

		case instr.OpSkip:
			if ip.getValue(d.SrcMode, d.SrcAddr) == ip.getValue(d.DestMode, d.DestAddr) {
				ip.Pointer++
			}

		case instr.OpSkipless:
			if ip.getValue(d.SrcMode, d.SrcAddr) < ip.getValue(d.DestMode, d.DestAddr) {
				ip.Pointer++
			}

		case instr.OpStop:
			return Suspension{Kind: EventStop}

		case instr.OpSniff:
			if s := ip.execSniff(d); s != nil {
				return *s
			}

		case instr.OpRandom:
			seed := ip.getValue(d.SrcMode, d.SrcAddr)
			r := rand.New(rand.NewSource(int64(seed)))
			ip.writeValue(d.DestMode, d.DestAddr, r.Uint32())

		case instr.OpFace:
			ip.Direction = direction.FromValue(ip.getValue(d.SrcMode, d.SrcAddr))

		case instr.OpLadar:
			dd := d
			return Suspension{
				Kind: EventLadar,
				Callback: func(v uint32) {
					ip.writeValue(dd.DestMode, dd.DestAddr, v)
				},
			}

		case instr.OpEtherRead:
			key := uint16(ip.getValue(d.SrcMode, d.SrcAddr) % instr.MemoryWords)
			ip.writeValue(d.DestMode, d.DestAddr, ip.ether[key])

		case instr.OpEtherWrite:
			key := uint16(ip.getValue(d.DestMode, d.DestAddr) % instr.MemoryWords)
			ip.ether[key] = ip.getValue(d.SrcMode, d.SrcAddr)

		case instr.OpNudge:
			value := ip.getValue(d.SrcMode, d.SrcAddr)
			wordIndex := uint16(ip.getValue(d.DestMode, d.DestAddr) % instr.MemoryWords)
			return Suspension{Kind: EventNudge, WordIndex: wordIndex, Value: value}

		case instr.OpTeach:
			value := ip.getValue(d.SrcMode, d.SrcAddr)
			wordIndex := uint16(ip.getValue(d.DestMode, d.DestAddr) % instr.MemoryWords)
			return Suspension{Kind: EventTeach, WordIndex: wordIndex, Value: value}

		case instr.OpBask:
			return Suspension{Kind: EventBask}

		case instr.OpHandoff:
			return Suspension{Kind: EventHandoff}

		case instr.OpMove:
			cutoff := uint16(ip.getValue(d.SrcMode, d.SrcAddr) % instr.MemoryWords)
			fuel := uint64(ip.getValue(d.DestMode, d.DestAddr))
			return Suspension{Kind: EventMove, Cutoff: cutoff, Fuel: fuel}

		case instr.OpProcure:
			amount := uint64(ip.getValue(d.SrcMode, d.SrcAddr))
			return Suspension{Kind: EventProcure, Amount: amount}

		case instr.OpBestow:
			amount := min(uint64(ip.getValue(d.SrcMode, d.SrcAddr)), ip.Energy)
			ip.Energy -= amount
			return Suspension{Kind: EventBestow, Amount: amount}

		case instr.OpCopy:
			v := ip.getValue(d.SrcMode, d.SrcAddr)
			ip.writeValue(d.DestMode, d.DestAddr, v)
		}
	}
}

// execSniff resolves the internal scent kinds directly and returns nil; for
// the one external kind (LIGHT_LEVEL) it returns the Suspension the caller
// must propagate.
func (ip *Interpreter) execSniff(d instr.Instruction) *Suspension {
	scent := Scent(ip.getValue(d.SrcMode, d.SrcAddr))
	switch scent {
	case ScentStartEnergy:
		ip.writeValue(d.DestMode, d.DestAddr, uint32(ip.StartEnergy))
	case ScentCurrentEnergy:
		ip.writeValue(d.DestMode, d.DestAddr, uint32(ip.Energy))
	case ScentPi:
		ip.writeValue(d.DestMode, d.DestAddr, BigPi)
	case ScentE:
		ip.writeValue(d.DestMode, d.DestAddr, BigE)
	case ScentChecksum:
		ip.writeValue(d.DestMode, d.DestAddr, ip.checksum())
	case ScentSoul:
		var v uint32
		if ip.Soul.Present {
			v = ip.Soul.Value
		}
		ip.writeValue(d.DestMode, d.DestAddr, v)
	case ScentLightLevel:
		dd := d
		return &Suspension{
			Kind: EventSniffLight,
			Callback: func(v uint32) {
				ip.writeValue(dd.DestMode, dd.DestAddr, v)
			},
		}
	default:
		ip.writeValue(d.DestMode, d.DestAddr, 0)
	}
	return nil
}

func (ip *Interpreter) checksum() uint32 {
	var sum uint32
	for _, w := range ip.memory {
		sum += w
	}
	return sum
}

func (ip *Interpreter) execBinary(op instr.Opcode, d instr.Instruction) {
	sv := ip.getValue(d.SrcMode, d.SrcAddr)
	dv := ip.getValue(d.DestMode, d.DestAddr)

	var result uint32
	switch op {
	case instr.OpAdd:
		result = arith.Add(sv, dv)
	case instr.OpSub:
		result = arith.Sub(sv, dv)
	case instr.OpMul:
		result = arith.Mul(sv, dv)
	case instr.OpDiv:
		result = arith.Div(sv, dv)
	case instr.OpMod:
		result = arith.Mod(sv, dv)
	case instr.OpBand:
		result = arith.Band(sv, dv)
	case instr.OpBor:
		result = arith.Bor(sv, dv)
	case instr.OpBxor:
		result = arith.Bxor(sv, dv)
	case instr.OpLshift:
		result = arith.Lshift(sv, dv)
	case instr.OpRshift:
		result = arith.Rshift(sv, dv)
	}
	ip.writeValue(d.DestMode, d.DestAddr, result)
}

func (ip *Interpreter) execExchange(d instr.Instruction) {
	sv := ip.getValue(d.SrcMode, d.SrcAddr)
	dv := ip.getValue(d.DestMode, d.DestAddr)
	ip.writeValue(d.SrcMode, d.SrcAddr, dv)
	ip.writeValue(d.DestMode, d.DestAddr, sv)
}

func (ip *Interpreter) getValue(mode instr.Mode, addr uint16) uint32 {
	switch mode {
	case instr.ModeAccumulator:
		return ip.Accumulator
	case instr.ModeLiteral:
		return uint32(addr)
	case instr.ModeIndirect:
		i := ip.memory[addr] % instr.MemoryWords
		return ip.memory[i]
	default: // ModeNormal
		return ip.memory[addr]
	}
}

func (ip *Interpreter) writeValue(mode instr.Mode, addr uint16, value uint32) {
	switch mode {
	case instr.ModeLiteral:
		// silent no-op, per spec.md §4.3
	case instr.ModeAccumulator:
		ip.Accumulator = value
	case instr.ModeIndirect:
		i := ip.memory[addr] % instr.MemoryWords
		ip.memory[i] = value
	default: // ModeNormal
		ip.memory[addr] = value
	}
}
