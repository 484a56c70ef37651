package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/grapple/internal/config"
	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/metrics"
	"github.com/san-kum/grapple/internal/scenario"
	"github.com/san-kum/grapple/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	cursorStep      = 1.0
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives a simulator from the keyboard. In scripted mode the
// config's scenario supplies input; otherwise a Manual driver is steered
// with g (grapple at the cursor), x (release) and i (idle).
type Model struct {
	cfg      *config.Config
	sim      *sim.Simulator
	driver   sim.Driver
	manual   *scenario.Manual
	scripted bool

	canvas *Canvas
	view   Viewport
	world  [][2]dynamo.Vec2
	cursor dynamo.Vec2

	running    bool
	stretch    []float64
	contacts   []float64
	recording  bool
	frames     []*gifFrame
	recordPath string
	status     string
	showHelp   bool
}

// NewModel prepares a live view of cfg. cfg must already be validated.
func NewModel(cfg *config.Config, scripted bool) Model {
	m := Model{
		cfg:        cfg,
		scripted:   scripted,
		canvas:     NewCanvas(width, height),
		world:      cfg.World.Segments(),
		running:    true,
		recordPath: "grapple.gif",
	}
	m.reset()

	w, h := m.canvas.Pixels()
	m.view = Fit(w, h, m.landmarks()...)
	return m
}

// landmarks are the world positions the viewport must always show.
func (m *Model) landmarks() []dynamo.Vec2 {
	s := m.cfg.Scenario
	pts := []dynamo.Vec2{s.OwnerAt(0), s.OwnerAt(m.cfg.Duration), m.sim.Start()}
	for _, e := range s.Events {
		if e.Action == scenario.ActionGrapple {
			pts = append(pts, e.Point)
		}
	}
	for _, seg := range m.world {
		pts = append(pts, seg[0], seg[1])
	}
	return pts
}

func (m *Model) reset() {
	s := sim.New(m.cfg.Params(), m.cfg.World.Oracle())
	m.sim = s
	m.stretch = m.stretch[:0]
	m.contacts = m.contacts[:0]

	if m.scripted {
		m.manual = nil
		m.driver = &m.cfg.Scenario
		return
	}
	sc := m.cfg.Scenario
	m.manual = scenario.NewManual(sc.OwnerAt(0), sc.LaunchOffset)
	m.driver = m.manual
	if m.cursor == (dynamo.Vec2{}) {
		m.cursor = s.Start().Add(dynamo.V(8, -8))
	}
}

func (m Model) Init() tea.Cmd {
	return tick(m.cfg.Dt)
}

func tick(dt float64) tea.Cmd {
	return tea.Tick(time.Duration(dt*float64(time.Second)), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.saveRecording()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "n":
			if !m.running {
				m.step()
			}
		case "?":
			m.showHelp = !m.showHelp
		case "p":
			if m.recording {
				m.saveRecording()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*gifFrame, 0)
			}
		}
		if m.manual != nil {
			m.steer(msg.String())
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		if m.recording {
			m.draw()
			m.frames = append(m.frames, capture(m.canvas))
		}
		return m, tick(m.cfg.Dt)
	}
	return m, nil
}

func (m *Model) steer(key string) {
	switch key {
	case "g":
		m.manual.Grapple(m.cursor)
	case "x":
		m.manual.Release()
	case "i":
		m.manual.Idle()
	case "up", "k":
		m.cursor.Y -= cursorStep
	case "down", "j":
		m.cursor.Y += cursorStep
	case "left", "h":
		m.cursor.X -= cursorStep
	case "right", "l":
		m.cursor.X += cursorStep
	}
}

// step advances the simulator one tick and records its history.
func (m *Model) step() {
	m.sim.Tick(m.driver.Input(m.sim.Time()), m.cfg.Dt)
	f := m.sim.Frame()

	var stretch float64
	if f.Active() {
		for _, l := range m.sim.Chain().SegmentLengths() {
			stretch = max(stretch, l-m.cfg.Rope.Distance)
		}
	}
	m.stretch = appendCapped(m.stretch, stretch)
	m.contacts = appendCapped(m.contacts, float64(f.Contacts))
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m *Model) draw() {
	m.canvas.Clear()
	Draw(m.canvas, m.view, m.sim.Frame(), m.world)
	if m.manual != nil {
		x, y := m.view.Project(m.cursor)
		m.canvas.DrawLine(x-2, y, x+2, y)
		m.canvas.DrawLine(x, y-2, x, y+2)
	}
}

func (m *Model) saveRecording() {
	if err := saveGIF(m.recordPath, m.frames); err != nil {
		m.status = "record failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.recordPath)
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render(strings.ToUpper(m.cfg.Name)) + "\n")
	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render("● REC") + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.stretch) > 1 {
		chart := asciigraph.Plot(m.stretch, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Stretch"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	f := m.sim.Frame()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", f.Time))
	row("Tick", fmt.Sprintf("%d", f.Tick))
	row("Length", fmt.Sprintf("%.2f", f.RopeLength))
	row("Contacts", SparklineChart(m.contacts, 20))
	if f.Active() {
		row("Sag", fmt.Sprintf("%.3f", metrics.ChordDeviation(f.Points)))
	} else {
		row("Sag", Subtle.Render("retracted"))
	}
	if m.manual != nil {
		row("Intent", dynamo.IntentOf(m.manual.State()).Kind.String())
		row("Cursor", fmt.Sprintf("(%.1f, %.1f)", m.cursor.X, m.cursor.Y))
	}
	if m.status != "" {
		s.WriteString("\n" + Subtle.Render(m.status) + "\n")
	}

	hint := "SP:Pause N:Step R:Reset Q:Quit\nP:Record ?:Help"
	if m.manual != nil {
		hint += "\nG:Grapple X:Release I:Idle ←↑↓→:Aim"
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\n" + hint))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  N        - Single step while paused ║
║  R        - Reset simulation         ║
║  G        - Grapple at cursor        ║
║  X        - Release and retract      ║
║  I        - Idle (no intent)         ║
║  Arrows   - Move the grapple cursor  ║
║  P        - Toggle GIF recording     ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the live view in the alternate screen.
func Run(cfg *config.Config, scripted bool) error {
	_, err := tea.NewProgram(NewModel(cfg, scripted), tea.WithAltScreen()).Run()
	return err
}
