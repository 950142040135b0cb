package pond

import (
	"github.com/golang/glog"

	"pondlife/cell"
	"pondlife/direction"
	"pondlife/instr"
	"pondlife/vm"
)

// LadarMaxSteps bounds how far a LADAR scan travels before reporting
// LadarNothing.
const LadarMaxSteps = 200

// RunCell runs coord's cell to its next break, resolving every suspension
// event its interpreter raises along the way. It is a no-op if coord holds
// no living cell.
func (p *Pond) RunCell(coord Coord) {
	cl, ok := p.Cells[coord]
	if !ok || !cl.Alive() {
		return
	}
	ether := p.etherFor(cl.Soul)
	interp := vm.New(cl, ether)

	for {
		s := interp.Run()
		switch s.Kind {

		case vm.EventSniffLight:
			s.Callback(p.LightLevel(coord))

		case vm.EventLadar:
			s.Callback(uint32(p.ladarScan(coord, interp.Direction, cl)))

		case vm.EventTeach:
			p.teach(coord, interp, cl, s.WordIndex, s.Value)

		case vm.EventBestow:
			p.bestow(coord, interp, cl, s.Amount)

		case vm.EventHandoff:
			// ether is NOT re-derived from the new cell's soul: HANDOFF has
			// no access check, so a handoff to a different lineage must
			// keep touching the original cell's ether, per spec.md §4.9
			// ("restart the interpreter on it using the same ether").
			newCoord, newCell := p.handoff(coord, interp, cl)
			coord, cl = newCoord, newCell
			interp = vm.New(cl, ether)

		case vm.EventNudge:
			p.nudge(coord, interp, cl, s.WordIndex, s.Value)
			interp.WriteBack(cl)
			p.reconcileAlive(coord, cl)
			return

		case vm.EventProcure:
			p.procure(coord, interp, cl, s.Amount)
			interp.WriteBack(cl)
			p.reconcileAlive(coord, cl)
			return

		case vm.EventMove:
			p.move(coord, interp, cl, s.Cutoff, s.Fuel)
			return

		case vm.EventBask:
			interp.Energy += uint64(p.LightLevel(coord))
			interp.WriteBack(cl)
			p.reconcileAlive(coord, cl)
			return

		case vm.EventStop, vm.EventOutOfEnergy, vm.EventFinishedBook:
			interp.WriteBack(cl)
			if cl.Energy == 0 {
				cl.Kill()
			}
			wasAlive := p.Alive[coord]
			p.reconcileAlive(coord, cl)
			if wasAlive && !cl.Alive() {
				glog.Infof("cell died at %+v: %v", coord, s.Kind)
			}
			return
		}
	}
}

// ladarScan steps from coord along d up to LadarMaxSteps times, returning
// the lineage classification of the first cell with a soul present.
func (p *Pond) ladarScan(coord Coord, d direction.Direction, self *cell.Cell) vm.LadarResult {
	cur := coord
	for i := 0; i < LadarMaxSteps; i++ {
		cur = ApplyDirection(cur, d)
		hit := p.at(cur)
		if hit.Soul.Present {
			if self.Soul.SameLineage(hit.Soul) {
				return vm.LadarSoulmate
			}
			return vm.LadarHeathen
		}
	}
	return vm.LadarNothing
}

// teach overwrites one word of the forward neighbour's memory, if self can
// access it. No energy changes hands.
func (p *Pond) teach(coord Coord, interp *vm.Interpreter, self *cell.Cell, wordIndex uint16, value uint32) {
	forwardCoord := ApplyDirection(coord, interp.Direction)
	forward := p.mutable(forwardCoord)
	if self.CanAccess(forward) {
		forward.Memory[wordIndex] = value
	}
}

// bestow credits the forward neighbour with amount (already debited from
// self by the interpreter) and marks it alive under self's soul, if
// accessible. It does not break the cell's turn.
func (p *Pond) bestow(coord Coord, interp *vm.Interpreter, self *cell.Cell, amount uint64) {
	forwardCoord := ApplyDirection(coord, interp.Direction)
	forward := p.mutable(forwardCoord)
	if self.CanAccess(forward) {
		forward.Energy += amount
		forward.Soul = self.Soul
		p.reconcileAlive(forwardCoord, forward)
	}
}

// handoff writes the departing cell's state back, clears its soul if it
// has no energy left, and returns the forward neighbour as the new
// current cell.
func (p *Pond) handoff(coord Coord, interp *vm.Interpreter, self *cell.Cell) (Coord, *cell.Cell) {
	interp.WriteBack(self)
	if self.Energy == 0 {
		self.Soul = cell.Soul{}
	}
	p.reconcileAlive(coord, self)

	forwardCoord := ApplyDirection(coord, interp.Direction)
	if forwardCoord == coord {
		panic("pond: handoff to self")
	}
	return forwardCoord, p.mutable(forwardCoord)
}

// nudge snapshots the source's energy and soul, clears the source
// unconditionally, and — if the forward neighbour is accessible and the
// source had energy to give — transfers that snapshot to it and
// overwrites one of its words.
func (p *Pond) nudge(coord Coord, interp *vm.Interpreter, self *cell.Cell, wordIndex uint16, value uint32) {
	nudgeEnergy := interp.Energy
	nudgeSoul := self.Soul
	interp.Energy = 0
	self.Soul = cell.Soul{}

	forwardCoord := ApplyDirection(coord, interp.Direction)
	forward := p.mutable(forwardCoord)

	source := &cell.Cell{Soul: nudgeSoul}
	if source.CanAccess(forward) && nudgeEnergy > 0 {
		forward.Energy += nudgeEnergy
		forward.Soul = nudgeSoul
		forward.Memory[wordIndex] = value
	}
	p.reconcileAlive(forwardCoord, forward)
}

// procure drains min(amount, forward.Energy) from the accessible forward
// neighbour into self, clearing the neighbour's soul if it is left at
// zero energy.
func (p *Pond) procure(coord Coord, interp *vm.Interpreter, self *cell.Cell, amount uint64) {
	forwardCoord := ApplyDirection(coord, interp.Direction)
	forward := p.mutable(forwardCoord)
	if self.CanAccess(forward) {
		drained := min(amount, forward.Energy)
		forward.Energy -= drained
		interp.Energy += drained
		if forward.Energy == 0 {
			forward.Soul = cell.Soul{}
		}
	}
	p.reconcileAlive(forwardCoord, forward)
}

// move advances self up to fuel/stepCost steps along interp.Direction,
// stopping early at an inaccessible target. Any leftover fuel is donated,
// as energy, to the cell one past the last feasible step. The self's
// memory prefix (cutoff words), soul, and energy relocate to the final
// coordinate; the original coordinate is vacated entirely.
func (p *Pond) move(coord Coord, interp *vm.Interpreter, self *cell.Cell, cutoff uint16, fuel uint64) {
	stepCost := direction.StepCost(cutoff, interp.Direction)
	current := coord
	remaining := fuel

	for stepCost > 0 && remaining >= stepCost {
		next := ApplyDirection(current, interp.Direction)
		if !self.CanAccess(p.at(next)) {
			break
		}
		remaining -= stepCost
		current = next
	}

	if remaining > 0 {
		donateCoord := ApplyDirection(current, interp.Direction)
		donateCell := p.mutable(donateCoord)
		if !donateCell.Soul.Present {
			donateCell.Soul = self.Soul
		}
		donateCell.Energy += remaining
		p.reconcileAlive(donateCoord, donateCell)
	}

	if current == coord {
		interp.WriteBack(self)
		p.reconcileAlive(coord, self)
		return
	}

	delete(p.Cells, coord)
	delete(p.Alive, coord)

	dest := &cell.Cell{
		Soul:        self.Soul,
		Energy:      interp.Energy,
		Pointer:     interp.Pointer,
		Accumulator: interp.Accumulator,
		Direction:   interp.Direction,
	}
	for i := 0; i < int(cutoff) && i < instr.MemoryWords; i++ {
		dest.Memory[i] = self.Memory[i]
	}
	p.Cells[current] = dest
	p.reconcileAlive(current, dest)
}
