// Package pond implements the 2D grid world that cells inhabit: lazy cell
// storage, the alive-set, per-lineage ether, the light field radiated by
// suns, and the scheduler that drives one cell's interpreter per tick,
// resolving every suspension event it raises against the world.
package pond

import (
	"math"
	"math/rand"
	"sort"

	"pondlife/cell"
	"pondlife/direction"
)

const (
	// NumberOfSuns is how many inanimate light sources the pond places.
	NumberOfSuns = 3
	// SunMaxBrightness is the numerator of each sun's 1/d² contribution.
	SunMaxBrightness = 100000
	// StartEnergy is the energy a freshly lightning-struck cell is given.
	StartEnergy = 500
)

// Coord is a grid coordinate. The grid is logically unbounded: cells may
// wander outside [0,Width)x[0,Height) and still behave as ordinary,
// lazily-created cells — only a renderer would crop to bounds.
type Coord struct {
	X, Y int
}

// Pond is the 2D world: lazily-populated cell storage, the alive-set,
// per-lineage ether scratch space, a precomputed light field, and the
// pond's own seeded PRNG driving sun placement, scheduler choice, and
// lightning.
type Pond struct {
	Width, Height int

	Cells map[Coord]*cell.Cell
	Alive map[Coord]bool
	// Ethers maps a lineage's soul value to its shared scratch buffer.
	Ethers map[uint32]map[uint16]uint32

	Suns []Coord
	light map[Coord]uint32

	rng *rand.Rand
}

// NewPond builds a width x height pond, places NumberOfSuns suns at
// distinct random coordinates within the grid, and precomputes the light
// field over that grid.
func NewPond(width, height int, seed int64) *Pond {
	p := &Pond{
		Width:  width,
		Height: height,
		Cells:  map[Coord]*cell.Cell{},
		Alive:  map[Coord]bool{},
		Ethers: map[uint32]map[uint16]uint32{},
		light:  map[Coord]uint32{},
		rng:    rand.New(rand.NewSource(seed)),
	}
	p.placeSuns()
	p.precomputeLight()
	return p
}

func (p *Pond) placeSuns() {
	seen := map[Coord]bool{}
	for len(p.Suns) < NumberOfSuns {
		c := Coord{X: p.rng.Intn(p.Width), Y: p.rng.Intn(p.Height)}
		if seen[c] {
			continue
		}
		seen[c] = true
		p.Suns = append(p.Suns, c)
		p.Cells[c] = cell.NewSun()
	}
}

func (p *Pond) precomputeLight() {
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := Coord{X: x, Y: y}
			p.light[c] = p.computeLight(c)
		}
	}
}

// computeLight evaluates the light-field formula directly, for
// coordinates outside the precomputed grid (the grid is logically
// unbounded, so caching every reachable coordinate up front is
// impossible).
func (p *Pond) computeLight(c Coord) uint32 {
	var total float64
	for _, sun := range p.Suns {
		dx := float64(c.X - sun.X)
		dy := float64(c.Y - sun.Y)
		d2 := dx*dx + dy*dy
		if d2 == 0 {
			total += SunMaxBrightness
			continue
		}
		total += SunMaxBrightness / d2
	}
	return uint32(math.Floor(total))
}

// LightLevel returns the precomputed light level at c, falling back to a
// direct formula evaluation for coordinates outside the pond's bounds.
func (p *Pond) LightLevel(c Coord) uint32 {
	if v, ok := p.light[c]; ok {
		return v
	}
	return p.computeLight(c)
}

// at returns c's cell without creating a map entry for it — reads of
// absent coordinates must not grow the pond, so ladar scans and access
// checks stay cheap.
func (p *Pond) at(c Coord) *cell.Cell {
	if cl, ok := p.Cells[c]; ok {
		return cl
	}
	return &cell.Cell{}
}

// mutable returns c's cell, lazily creating a fresh empty one and
// recording it in Cells if this is the coordinate's first mutating access.
func (p *Pond) mutable(c Coord) *cell.Cell {
	if cl, ok := p.Cells[c]; ok {
		return cl
	}
	cl := &cell.Cell{}
	p.Cells[c] = cl
	return cl
}

// etherFor returns the shared ether buffer for s's lineage, creating one
// on first use. A cell with no soul gets a private, never-shared buffer.
func (p *Pond) etherFor(s cell.Soul) map[uint16]uint32 {
	if !s.Present {
		return map[uint16]uint32{}
	}
	if m, ok := p.Ethers[s.Value]; ok {
		return m
	}
	m := map[uint16]uint32{}
	p.Ethers[s.Value] = m
	return m
}

// reconcileAlive keeps the alive-set consistent with cl.Alive() for coord,
// per the invariant that alive must equal {c : pond[c].alive} at tick
// boundaries.
func (p *Pond) reconcileAlive(coord Coord, cl *cell.Cell) {
	if cl.Alive() {
		p.Alive[coord] = true
	} else {
		delete(p.Alive, coord)
	}
}

// ApplyDirection returns the 8-neighbour of coord in direction d.
func ApplyDirection(coord Coord, d direction.Direction) Coord {
	dx, dy := d.Offset()
	return Coord{X: coord.X + dx, Y: coord.Y + dy}
}

// Lightning places a freshly-randomised cell — random memory, start
// energy, and a freshly-drawn soul — at coord (or a uniformly random
// coordinate if coord is nil), adds it to the alive-set, and immediately
// runs it for one tick. Supplemented from original_source/pond.py's
// Pond.lightning, which spec.md's distillation does not name.
func (p *Pond) Lightning(coord *Coord) Coord {
	var target Coord
	if coord != nil {
		target = *coord
	} else {
		target = Coord{X: p.rng.Intn(p.Width), Y: p.rng.Intn(p.Height)}
	}

	cl := p.mutable(target)
	for i := range cl.Memory {
		cl.Memory[i] = p.rng.Uint32()
	}
	cl.Energy = StartEnergy
	cl.Soul = cell.Soul{Present: true, Value: p.rng.Uint32()}
	cl.Pointer = 0
	cl.Accumulator = 0
	cl.Direction = direction.West
	p.reconcileAlive(target, cl)

	p.RunCell(target)
	return target
}

// PickAliveCoord selects uniformly at random one coordinate from the
// alive-set, using the pond's seeded PRNG. It panics if the alive-set is
// empty; callers must check len(p.Alive) first.
//
// Map iteration order is randomized per-process by the Go runtime, so
// indexing into a live range with rng.Intn would make scheduler choice a
// function of that randomization instead of the seed. The keys are sorted
// into a deterministic order before indexing to preserve spec.md §5's
// reproducibility contract.
func (p *Pond) PickAliveCoord() Coord {
	coords := make([]Coord, 0, len(p.Alive))
	for c := range p.Alive {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})
	return coords[p.rng.Intn(len(coords))]
}

// Tick selects uniformly at random one coordinate from the alive-set and
// runs it to its next break. It is a no-op if the pond has no living
// cells.
func (p *Pond) Tick() {
	if len(p.Alive) == 0 {
		return
	}
	p.RunCell(p.PickAliveCoord())
}
