package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/grapple/internal/config"
)

var presetInfo = map[string]string{
	"swing":   "moving owner, open air",
	"retract": "grapple then reel in",
	"ceiling": "rope wraps a box",
	"slack":   "loose rope on a slope",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	menuTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuPointer = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuAccent  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuHotkey  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// paramSteps is how far h/l move each tunable.
var paramSteps = map[string]float64{
	"iterations":    1,
	"points":        4,
	"distance":      0.1,
	"gravity":       1,
	"extend_speed":  2,
	"retract_speed": 2,
}

// Menu picks a preset, lets its rope parameters be tuned, then hands off
// to a live Model.
type Menu struct {
	state, cursor int
	presets       []string
	cfg           *config.Config
	paramNames    []string
	paramCursor   int
	scripted      bool
	err           error
	live          Model
}

func NewMenu() *Menu {
	return &Menu{state: stateMenu, presets: config.ListPresets(), scripted: true}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.state == stateConfig {
		return m.configKey(key)
	}
	return m.menuKey(key)
}

func (m Menu) menuKey(msg tea.KeyMsg) (Menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.paramNames = sortedKeys(m.cfg.GetParams())
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m Menu) configKey(msg tea.KeyMsg) (Menu, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "m":
		m.scripted = !m.scripted
	case "s", "enter":
		if err := m.cfg.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		m.live = NewModel(m.cfg, m.scripted)
		m.state = stateSim
		return m, m.live.Init()
	}
	return m, nil
}

func (m *Menu) nudge(dir float64) {
	name := m.paramNames[m.paramCursor]
	val := m.cfg.GetParams()[name] + dir*paramSteps[name]
	if err := m.cfg.SetParam(name, val); err != nil {
		m.err = err
	}
}

func (m Menu) View() string {
	switch m.state {
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return m.viewMenu()
}

func (m Menu) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("GRAPPLE") + "\n    " + menuSub.Render("verlet rope simulator") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuPointer.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuAccent.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdle.Render(desc)))
		}
	}
	b.WriteString("\n    " + menuHotkey.Render("j/k") + menuIdle.Render(" navigate  ") + menuHotkey.Render("enter") + menuIdle.Render(" select  ") + menuHotkey.Render("q") + menuIdle.Render(" quit") + "\n")
	return b.String()
}

func (m Menu) viewConfig() string {
	var b strings.Builder
	mode := "manual"
	if m.scripted {
		mode = "scripted"
	}
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.cfg.Name)) + "\n    " + menuSub.Render(presetInfo[m.cfg.Name]+" · "+mode) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	params := m.cfg.GetParams()
	for i, name := range m.paramNames {
		valStr := fmt.Sprintf("%8.3f", params[name])
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuPointer.Render("▸"), menuActive.Render(fmt.Sprintf("%-14s", name)), menuAccent.Bold(true).Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-14s", name)), menuIdle.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuError.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuHotkey.Render("j/k") + menuIdle.Render(" select  ") + menuHotkey.Render("h/l") + menuIdle.Render(" adjust  ") + menuHotkey.Render("m") + menuIdle.Render(" mode  ") + menuHotkey.Render("s") + menuIdle.Render(" start  ") + menuHotkey.Render("esc") + menuIdle.Render(" back") + "\n")
	return b.String()
}

// RunMenu starts the preset picker in the alternate screen.
func RunMenu() error {
	_, err := tea.NewProgram(NewMenu(), tea.WithAltScreen()).Run()
	return err
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
