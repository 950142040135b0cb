package pond

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"pondlife/cell"
	"pondlife/instr"
	"pondlife/vm"
)

type model struct {
	pond  *Pond
	coord Coord

	cl     *cell.Cell
	ether  map[uint16]uint32
	interp *vm.Interpreter

	last vm.Suspension
	done bool
}

// Init is the first function bubbletea calls. This debugger has nothing to
// set up beyond what Debug already did, so it returns no initial command.
func (m model) Init() tea.Cmd { return nil }

// Update resolves one suspension event per keypress, reusing pond's own
// suspension handlers so the debugger can never drift from RunCell's
// behaviour.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case " ", "j":
			if m.done {
				return m, nil
			}
			m.step()
		}
	}
	return m, nil
}

func (m *model) step() {
	s := m.interp.Run()
	m.last = s

	switch s.Kind {
	case vm.EventSniffLight:
		s.Callback(m.pond.LightLevel(m.coord))

	case vm.EventLadar:
		s.Callback(uint32(m.pond.ladarScan(m.coord, m.interp.Direction, m.cl)))

	case vm.EventTeach:
		m.pond.teach(m.coord, m.interp, m.cl, s.WordIndex, s.Value)

	case vm.EventBestow:
		m.pond.bestow(m.coord, m.interp, m.cl, s.Amount)

	case vm.EventHandoff:
		// m.ether is kept as-is: HANDOFF restarts the interpreter on the
		// new cell using the SAME ether, not one derived from its soul.
		newCoord, newCell := m.pond.handoff(m.coord, m.interp, m.cl)
		m.coord, m.cl = newCoord, newCell
		m.interp = vm.New(m.cl, m.ether)

	case vm.EventNudge:
		m.pond.nudge(m.coord, m.interp, m.cl, s.WordIndex, s.Value)
		m.finish()

	case vm.EventProcure:
		m.pond.procure(m.coord, m.interp, m.cl, s.Amount)
		m.finish()

	case vm.EventMove:
		m.pond.move(m.coord, m.interp, m.cl, s.Cutoff, s.Fuel)
		m.done = true

	case vm.EventBask:
		m.interp.Energy += uint64(m.pond.LightLevel(m.coord))
		m.finish()

	case vm.EventStop, vm.EventOutOfEnergy, vm.EventFinishedBook:
		m.interp.WriteBack(m.cl)
		if m.cl.Energy == 0 {
			m.cl.Kill()
		}
		m.finish()
	}
}

func (m *model) finish() {
	m.interp.WriteBack(m.cl)
	m.pond.reconcileAlive(m.coord, m.cl)
	m.done = true
}

func (m model) renderPage(start uint16) string {
	if start%8 != 0 {
		panic("start must be a multiple of 8")
	}
	s := fmt.Sprintf("%04d | ", start)
	for i, w := range m.cl.Memory[start : start+8] {
		if start+uint16(i) == m.interp.Pointer {
			s += fmt.Sprintf("[%08x] ", w)
		} else {
			s += fmt.Sprintf(" %08x  ", w)
		}
	}
	return s
}

func (m model) status() string {
	return fmt.Sprintf(`
coord:  %+v
alive:  %v
pointer: %d
acc:    %d
dir:    %s
energy: %d
`,
		m.coord, m.cl.Alive(), m.interp.Pointer, m.interp.Accumulator,
		m.interp.Direction, m.interp.Energy,
	)
}

func (m model) pageTable() string {
	header := fmt.Sprintf("word | %70s", "")
	pages := []string{header}

	base := int(m.interp.Pointer) / 8 * 8
	for i := -2; i <= 2; i++ {
		start := base + i*8
		if start < 0 || start+8 > instr.MemoryWords {
			continue
		}
		pages = append(pages, m.renderPage(uint16(start)))
	}
	return strings.Join(pages, "\n")
}

// View renders the debugger's single-screen UI: a window of memory words
// around the program counter, the interpreter's register state, and a
// dump of the most recently resolved suspension.
func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(m.last),
	)
}

// Debug single-steps coord's cell through its next break, one suspension
// event at a time, in an interactive terminal UI. It blocks until the
// user quits.
func (p *Pond) Debug(coord Coord) {
	cl := p.mutable(coord)
	ether := p.etherFor(cl.Soul)

	_, err := tea.NewProgram(model{
		pond:   p,
		coord:  coord,
		cl:     cl,
		ether:  ether,
		interp: vm.New(cl, ether),
	}).Run()
	if err != nil {
		panic(err)
	}
}
