// Package panel is a terminal control panel for a page running in-process: it drives the
// page's widgets the way a user would and shows what the page displays.
package panel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Carmen-Shannon/oxy-controls/common"
	"github.com/Carmen-Shannon/oxy-controls/engine"
	"github.com/Carmen-Shannon/oxy-controls/engine/controls"
	"github.com/Carmen-Shannon/oxy-controls/engine/dom"
)

// RefreshInterval is how often the panel redraws what the page displays.
const RefreshInterval = 250 * time.Millisecond

type refreshMsg time.Time

// Model is the bubbletea model of the panel.
type Model struct {
	doc      *dom.MemoryDocument
	engine   engine.Engine
	window   *dom.MemoryWindow
	bindings []controls.Binding

	// post runs widget interactions on the page's executor.
	post func(func())

	cursor   int
	editing  bool
	input    textinput.Model
	showHelp bool
	width    int
	height   int
	quitting bool
}

// New creates a panel over a page document and its engine.
//
// Parameters:
//   - doc: the page document holding the widgets
//   - eng: the page's engine
//   - bindings: the controls to list, in panel order
//   - options: functional options to configure the panel
//
// Returns:
//   - Model: the panel model
func New(doc *dom.MemoryDocument, eng engine.Engine, bindings []controls.Binding, options ...ModelBuilderOption) Model {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 32
	ti.Width = 20
	ti.Prompt = "= "

	m := Model{
		doc:      doc,
		engine:   eng,
		bindings: bindings,
		post:     func(fn func()) { fn() },
		input:    ti,
	}
	for _, opt := range options {
		opt(&m)
	}
	return m
}

// Run shows the panel on the terminal until the user quits.
//
// Parameters:
//   - m: the panel model
//
// Returns:
//   - error: error if the terminal program fails
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func refresh() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		return m, refresh()

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.bindings)-1 {
				m.cursor++
			}

		case key.Matches(msg, keys.Left):
			m.nudge(-1)

		case key.Matches(msg, keys.Right):
			m.nudge(1)

		case key.Matches(msg, keys.Press):
			if b, ok := m.selected(); ok && b.Kind == controls.KindButton {
				m.click(b)
			}

		case key.Matches(msg, keys.Edit):
			if b, ok := m.selected(); ok && b.Kind == controls.KindSlider {
				m.editing = true
				m.input.SetValue(m.value(b))
				m.input.CursorEnd()
				return m, m.input.Focus()
			}

		case key.Matches(msg, keys.Info):
			m.post(m.engine.ShowPerformanceInfo)

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Esc):
		m.editing = false
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.editing = false
		m.input.Blur()
		if b, ok := m.selected(); ok {
			m.send(b, strings.TrimSpace(m.input.Value()))
		}
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) selected() (controls.Binding, bool) {
	if m.cursor < 0 || m.cursor >= len(m.bindings) {
		return controls.Binding{}, false
	}
	return m.bindings[m.cursor], true
}

func (m Model) element(b controls.Binding) *dom.MemoryElement {
	return m.doc.Element(strings.TrimPrefix(b.Selector, "#"))
}

func (m Model) value(b controls.Binding) string {
	el := m.element(b)
	if el == nil {
		return ""
	}
	return el.Value()
}

func (m Model) click(b controls.Binding) {
	if el := m.element(b); el != nil {
		m.post(el.Click)
	}
}

func (m Model) send(b controls.Binding, value string) {
	if el := m.element(b); el != nil {
		m.post(func() { el.Input(value) })
	}
}

// nudge moves the selected slider one step, snapped to its step grid and clamped to its range.
func (m Model) nudge(dir float64) {
	b, ok := m.selected()
	if !ok || b.Kind != controls.KindSlider {
		return
	}
	current, err := strconv.ParseFloat(m.value(b), 64)
	if err != nil {
		current = b.Default
	}
	m.send(b, common.FormatNumber(stepValue(current, dir, b)))
}

func stepValue(current, dir float64, b controls.Binding) float64 {
	step := b.Step
	if step <= 0 {
		step = 1
	}
	v := current + dir*step
	v = b.Min + math.Round((v-b.Min)/step)*step
	v = math.Max(b.Min, math.Min(b.Max, v))
	return math.Round(v*1e9) / 1e9
}

// display returns the text of a slider's adjacent value display.
func (m Model) display(b controls.Binding) string {
	el := m.element(b)
	if el == nil {
		return ""
	}
	parent := el.ParentElement()
	if parent == nil {
		return ""
	}
	if d := parent.QuerySelector("." + dom.SliderValueClass); d != nil {
		return d.TextContent()
	}
	return ""
}

func (m Model) View() string {
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Alice2 Controls") + " " + mutedStyle.Render("session "+shortSession(m.engine.Session())) + "\n")

	state := m.engine.State()
	stateText := waitingStyle.Render(state.String())
	if state == engine.StateBound {
		stateText = boundStyle.Render(state.String())
	}
	fps := ""
	if el := m.doc.Element(dom.FPSCounterID); el != nil {
		fps = el.TextContent()
	}
	dims := m.engine.Coordinator().Dimensions()
	b.WriteString(fmt.Sprintf("state: %s  %s  surface: %s\n\n", stateText, valueStyle.Render(common.Coalesce(fps, "FPS: -")), dims))

	for i, c := range m.bindings {
		cursor := "  "
		name := common.Coalesce(c.Label, c.Name)
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
			name = cursorStyle.Render(name)
		}
		line := cursor + name
		if c.Kind == controls.KindSlider {
			line += "  " + valueStyle.Render(m.display(c))
			if i == m.cursor && m.editing {
				line += "  " + m.input.View()
			}
		} else if c.Key != 0 {
			line += "  " + mutedStyle.Render("["+string(rune(c.Key))+"]")
		}
		b.WriteString(line + "\n")
	}

	if m.window != nil {
		if alerts := m.window.Alerts(); len(alerts) > 0 {
			b.WriteString("\n" + borderStyle.Render(alerts[len(alerts)-1]) + "\n")
		}
	}

	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) helpView() string {
	if !m.showHelp {
		return helpKeyStyle.Render("?") + " " + helpDescStyle.Render("help") + "  " +
			helpKeyStyle.Render("q") + " " + helpDescStyle.Render("quit")
	}
	var parts []string
	for _, k := range []key.Binding{keys.Up, keys.Down, keys.Left, keys.Right, keys.Press, keys.Edit, keys.Info, keys.Quit} {
		h := k.Help()
		parts = append(parts, helpKeyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "\n")
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
