package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/sim"
)

var presetInfo = map[string]string{
	"rain":    "fixed-size drops from three emitters",
	"scatter": "random radii from two emitters",
	"heavy":   "rain under strong gravity",
	"still":   "no gravity, spawn by hand",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type param struct {
	name string
	step float64
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var params = []param{
	{"gravity", 100,
		func(c *config.Config) float64 { return c.Solver.Gravity.Y },
		func(c *config.Config, v float64) { c.Solver.Gravity.Y = v }},
	{"frame_dt", 0.001,
		func(c *config.Config) float64 { return c.FrameDt },
		func(c *config.Config, v float64) { c.FrameDt = v }},
	{"max_bodies", 10,
		func(c *config.Config) float64 { return float64(c.MaxBodies) },
		func(c *config.Config, v float64) { c.MaxBodies = int(v) }},
	{"seed", 1,
		func(c *config.Config) float64 { return float64(c.Seed) },
		func(c *config.Config, v float64) { c.Seed = int64(v) }},
}

// App is the preset picker that launches a live view.
type App struct {
	state, cursor int
	presets       []string
	cfg           *config.Config
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	liveModel     Model
}

func NewApp() *App {
	return &App{state: stateMenu, presets: config.ListPresets()}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(msg)
		case stateConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
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
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	p := params[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			var val float64
			if _, err := fmt.Sscanf(m.editBuf, "%g", &val); err == nil {
				p.set(m.cfg, val)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, fmt.Sprintf("%g", p.get(m.cfg))
	case "left", "h":
		p.set(m.cfg, p.get(m.cfg)-p.step)
	case "right", "l":
		p.set(m.cfg, p.get(m.cfg)+p.step)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m App) start() (App, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	spawners, err := m.cfg.Spawners(m.cfg.Seed)
	if err != nil {
		m.err = err
		return m, nil
	}
	s := sim.New(m.cfg.BuildSolver(), spawners...)
	m.liveModel = NewModel(s, dynamo.NewWorld(), m.cfg.FrameDt, m.cfg.Name)
	m.state = stateSim
	return m, m.liveModel.Init()
}

func (m App) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.liveModel.View()
	}
	return ""
}

func (m App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + HeaderStyle.Render("VERLETSIM") + "\n    " + Subtle.Render("circles in a circle") + "\n    " + Separator(25) + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", selectedMarker.Render("▸"), selectedName.Render(fmt.Sprintf("%-10s", name)), selectedValue.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", idleName.Render(fmt.Sprintf("  %-10s", name)), idleValue.Render(desc)))
		}
	}
	b.WriteString("\n    " + Hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m App) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + HeaderStyle.Render(strings.ToUpper(m.cfg.Name)) + "\n    " + Subtle.Render(presetInfo[m.cfg.Name]) + "\n    " + Separator(25) + "\n\n")
	for i, p := range params {
		valStr := fmt.Sprintf("%10g", p.get(m.cfg))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", selectedMarker.Render("▸"), selectedName.Render(fmt.Sprintf("%-10s", p.name)), selectedValue.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", idleName.Render(fmt.Sprintf("  %-10s", p.name)), idleValue.Render(valStr)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + StatusRecording.UnsetBlink().Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + Hints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewApp(), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
