package viz

import (
	"context"
	"fmt"
	"image"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600

	// ClickRadius is the radius of bodies spawned with the mouse or the s key.
	ClickRadius = 10.0

	// canvas offset inside the terminal, from canvasStyle's padding
	canvasTop  = 1
	canvasLeft = 2
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(canvasTop, canvasLeft)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model steps a world at 60 Hz and renders it onto a braille canvas.
type Model struct {
	sim           *sim.Simulator
	world         *dynamo.World
	boundary      physics.Boundary
	name          string
	frameDt       float64
	frame         int
	t             float64
	rejected      int
	snap          []dynamo.BodyView
	canvas        *Canvas
	running       bool
	energyHistory []float64
	recording     bool
	frames        []*image.Paletted
	showHelp      bool
	err           error
}

// NewModel builds a live view over w. The world must only be touched through
// the model once the program starts.
func NewModel(s *sim.Simulator, w *dynamo.World, frameDt float64, name string) Model {
	return Model{
		sim:           s,
		world:         w,
		boundary:      s.Solver().Boundary,
		name:          name,
		frameDt:       frameDt,
		snap:          w.Snapshot(),
		canvas:        NewCanvas(width, height),
		running:       true,
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			m.running = !m.running
		case "s":
			c := m.boundary.Center
			m.sim.Queue().Push(c.X, c.Y-m.boundary.Radius*0.8, ClickRadius)
		case "r":
			m.reset()
		case "g":
			if m.recording {
				m.err = m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.err = nil
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		case "t":
			nextTheme()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if p, ok := m.unproject(msg.X, msg.Y); ok {
				m.sim.Queue().Push(p.X, p.Y, ClickRadius)
			}
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tick()
	}
	return m, nil
}

// step advances the world by one frame.
func (m *Model) step() {
	m.frame++
	snap, rejected := m.sim.Frame(context.Background(), m.world, m.frame, m.frameDt)
	m.snap = snap
	m.rejected += rejected
	m.t += m.frameDt

	energy := metrics.Kinetic(m.world.Bodies(), m.frameDt/physics.SubSteps)
	m.energyHistory = append(m.energyHistory, energy)
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// reset empties the world and restarts the frame clock.
func (m *Model) reset() {
	m.world.Reset()
	m.frame = 0
	m.t = 0
	m.rejected = 0
	m.snap = m.world.Snapshot()
	m.energyHistory = m.energyHistory[:0]
}

// scale returns sub-pixels per world unit and the sub-pixel origin of the
// boundary's bounding box.
func (m *Model) scale() (float64, float64, float64) {
	cw, ch := float64(m.canvas.Width*2), float64(m.canvas.Height*4)
	s := math.Min(cw, ch) / (2 * m.boundary.Radius)
	ox := (cw - 2*m.boundary.Radius*s) / 2
	oy := (ch - 2*m.boundary.Radius*s) / 2
	return s, ox, oy
}

// project maps world coordinates to canvas sub-pixels.
func (m *Model) project(p dynamo.Vector) (int, int) {
	s, ox, oy := m.scale()
	origin := m.boundary.Center.Sub(dynamo.Vec(m.boundary.Radius, m.boundary.Radius))
	return int(math.Round(ox + (p.X-origin.X)*s)), int(math.Round(oy + (p.Y-origin.Y)*s))
}

// unproject maps a terminal cell to the world position at its centre.
func (m *Model) unproject(col, row int) (dynamo.Vector, bool) {
	col -= canvasLeft
	row -= canvasTop
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return dynamo.Zero, false
	}
	s, ox, oy := m.scale()
	px, py := float64(col*2)+1, float64(row*4)+2
	origin := m.boundary.Center.Sub(dynamo.Vec(m.boundary.Radius, m.boundary.Radius))
	return dynamo.Vec(origin.X+(px-ox)/s, origin.Y+(py-oy)/s), true
}

func (m *Model) draw() {
	m.canvas.Clear()
	s, _, _ := m.scale()
	cx, cy := m.project(m.boundary.Center)
	m.canvas.DrawCircle(cx, cy, int(math.Round(m.boundary.Radius*s))-1)
	for _, b := range m.snap {
		x, y := m.project(dynamo.Vec(b.X, b.Y))
		m.canvas.FillCircle(x, y, b.Radius*s)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Foreground(CurrentTheme.Arena).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Foreground(CurrentTheme.Accent).Render(strings.ToUpper(m.name)) + "\n")
	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render("REC")
	}
	s.WriteString(status + "\n\n")
	if m.err != nil {
		s.WriteString(StatusRecording.UnsetBlink().Render("record failed: "+m.err.Error()) + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(m.snap))) + "\n")
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d", m.frame)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3g", energy)) + "\n")
	if m.rejected > 0 {
		s.WriteString(labelStyle.Render("Rejected") + valueStyle.Render(fmt.Sprintf("%d", m.rejected)) + "\n")
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nS:Spawn  Click:Spawn\nT:Theme  G:Record ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  Click    - Spawn body at pointer    ║
║  S        - Spawn body at the top    ║
║  R        - Remove every body        ║
║  Q        - Quit                     ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts a live view in the alternate screen with mouse support.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
