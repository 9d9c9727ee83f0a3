package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/physkit/internal/calc"
	"github.com/san-kum/physkit/internal/storage"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

type state int

const (
	stateMenu state = iota
	stateConfig
	stateResult
)

// Model is the bubbletea model for the calculator browser.
type Model struct {
	registry *calc.Registry
	store    *storage.Store

	state    state
	cursor   int
	names    []string
	selected *calc.Calculator

	params      map[string]float64
	paramCursor int
	editing     bool
	editBuf     string

	result  *calc.Result
	err     error
	savedID string

	width  int
	height int
}

// NewInteractiveApp builds the TUI model. st may be nil, which disables
// saving results.
func NewInteractiveApp(reg *calc.Registry, st *storage.Store) *Model {
	return &Model{
		registry: reg,
		store:    st,
		state:    stateMenu,
		names:    reg.List(),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateResult:
		return m.resultKey(msg)
	}
	return m, nil
}

func (m Model) menuKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.names)-1 {
			m.cursor++
		}
	case "enter", " ":
		c, err := m.registry.Get(m.names[m.cursor])
		if err != nil {
			m.err = err
			return m, nil
		}
		m.selected = c
		m.params = c.Defaults()
		m.paramCursor = 0
		m.err = nil
		m.state = stateConfig
	}
	return m, nil
}

func (m Model) currentParam() calc.Param {
	return m.selected.Params[m.paramCursor]
}

func (m Model) configKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			name := m.currentParam().Name
			v, err := strconv.ParseFloat(m.editBuf, 64)
			if err != nil {
				m.err = fmt.Errorf("%s: %q is not a number", name, m.editBuf)
			} else {
				m.params[name] = v
				m.err = nil
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	p := m.currentParam()
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.selected.Params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		if len(p.Choices) > 0 {
			m.cycle(p, 1)
			return m, nil
		}
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.params[p.Name], 'g', -1, 64)
	case "left", "h":
		m.nudge(p, -1)
	case "right", "l":
		m.nudge(p, 1)
	case "d":
		m.params[p.Name] = p.Default
	case "r":
		m.result, m.err = m.registry.Run(m.selected.Name, m.params)
		m.savedID = ""
		m.state = stateResult
	}
	return m, nil
}

func (m *Model) cycle(p calc.Param, dir int) {
	n := len(p.Choices)
	v := (int(m.params[p.Name]) + dir + n) % n
	m.params[p.Name] = float64(v)
}

// nudge steps a value by 10% of its magnitude, or 0.1 from zero.
func (m *Model) nudge(p calc.Param, dir int) {
	if len(p.Choices) > 0 {
		m.cycle(p, dir)
		return
	}
	v := m.params[p.Name]
	step := 0.1
	if v != 0 {
		step = 0.1 * abs(v)
	}
	m.params[p.Name] = v + float64(dir)*step
}

func (m Model) resultKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "c":
		m.err = nil
		m.state = stateConfig
	case "m":
		m.state = stateMenu
	case "s":
		if m.store != nil && m.result != nil && m.savedID == "" {
			id, err := m.store.Save(m.result)
			if err != nil {
				m.err = err
			} else {
				m.savedID = id
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateResult:
		return m.viewResult()
	}
	return ""
}

func (m Model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("           " + cyan.Render("p h y s k i t") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.names {
		desc := ""
		if c, err := m.registry.Get(name); err == nil {
			desc = c.Description
		}
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter open   q quit") + "\n")

	return b.String()
}

func (m Model) formatParam(p calc.Param) string {
	v := m.params[p.Name]
	if len(p.Choices) > 0 {
		i := int(v)
		if i >= 0 && i < len(p.Choices) {
			return fmt.Sprintf("%12s", p.Choices[i])
		}
	}
	return fmt.Sprintf("%12.6g", v)
}

func (m Model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.selected.Name) + "  " + dim.Render(m.selected.Description) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 40)) + "\n\n")

	for i, p := range m.selected.Params {
		val := m.formatParam(p)
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%12s", m.editBuf+"▋")
		}
		unit := dimmer.Render(" " + p.Unit)
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-16s", p.Name)) + magenta.Render(val) + unit + "  " + dim.Render(p.Help) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-16s", p.Name)) + dim.Render(val) + unit + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n      " + red.Render("✗ "+m.err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  d default  r run  esc back") + "\n")

	return b.String()
}

func (m Model) viewResult() string {
	var b strings.Builder

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString("   " + red.Render("✗ ") + cyan.Render(m.selected.Name) + "\n\n")
		b.WriteString("   " + red.Render(m.err.Error()) + "\n")
		b.WriteString("\n" + dim.Render("   c config  m menu  q quit") + "\n")
		return b.String()
	}

	b.WriteString("   " + green.Render("● ") + cyan.Render(m.selected.Name) + "\n\n")
	for _, q := range m.result.Quantities {
		b.WriteString(fmt.Sprintf("   %s %s %s\n",
			dim.Render(fmt.Sprintf("%-32s", q.Label)),
			white.Render(fmt.Sprintf("%14.6g", q.Value)),
			dim.Render(q.Unit)))
	}
	for _, n := range m.result.Notes {
		b.WriteString("\n   " + yellow.Render("› "+n))
	}
	b.WriteString("\n")

	if m.selected.Name == "projectile" {
		if plot := m.trajectoryCanvas(); plot != "" {
			b.WriteString("\n" + plot)
		}
	}

	if m.savedID != "" {
		b.WriteString("\n   " + green.Render("saved as "+m.savedID) + "\n")
	}

	hint := "   c config  m menu  q quit"
	if m.store != nil {
		hint = "   s save  c config  m menu  q quit"
	}
	b.WriteString("\n" + dim.Render(hint) + "\n")

	return b.String()
}

func RunInteractive(reg *calc.Registry, st *storage.Store) error {
	p := tea.NewProgram(NewInteractiveApp(reg, st), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
