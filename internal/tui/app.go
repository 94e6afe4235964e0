// Package tui is the interactive terminal form: three inputs, a Calculate
// action and the resulting diagrams drawn in place.
package tui

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gosfd/internal/diagram"
	"github.com/alexiusacademia/gosfd/internal/state"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldLength = iota
	fieldLoad
	fieldPosition
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Beam Length L (m)",
	"Point Load P (N)",
	"Load Position a (m)",
}

const (
	defaultChartWidth = 60
	chartHeight       = 8
)

type model struct {
	theme Theme
	deps  Deps

	inputs [fieldCount]textinput.Model
	focus  int
	width  int

	st state.State
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	m := model{
		theme: DefaultTheme(),
		deps:  deps,
		st:    state.Initial(),
	}

	initial := [fieldCount]string{deps.Length, deps.Load, deps.Position}
	placeholders := [fieldCount]string{"e.g. 10", "e.g. 100", "e.g. 5"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 32
		ti.Width = 20
		ti.Prompt = "› "
		ti.SetValue(initial[i])
		m.inputs[i] = ti
		m.st = state.Reduce(m.st, setField(i, initial[i]))
	}
	m.inputs[fieldLength].Focus()

	return m
}

func setField(i int, v string) state.Action {
	switch i {
	case fieldLength:
		return state.SetLength(v)
	case fieldLoad:
		return state.SetLoad(v)
	case fieldPosition:
		return state.SetPosition(v)
	}
	return nil
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "down":
			return m.moveFocus(1), nil

		case "shift+tab", "up":
			return m.moveFocus(-1), nil

		case "enter":
			m.st = state.Reduce(m.st, state.Calculate{})
			m.logOutcome()
			return m, nil

		case "ctrl+r":
			m.st = state.Reduce(m.st, state.Reset{})
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
			return m.moveFocus(-m.focus), nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.st = state.Reduce(m.st, setField(m.focus, m.inputs[m.focus].Value()))
	return m, cmd
}

func (m model) moveFocus(delta int) model {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	return m
}

func (m model) logOutcome() {
	if m.deps.Logger == nil {
		return
	}
	if m.st.Result == nil {
		m.deps.Logger.Info("tui.invalid_input",
			"length", m.st.Inputs.Length, "load", m.st.Inputs.Load, "position", m.st.Inputs.Position)
		return
	}
	m.deps.Logger.Debug("tui.calculated",
		"max_shear", m.st.Result.MaxShear, "max_moment", m.st.Result.MaxMoment)
}

func (m model) chartWidth() int {
	if m.width > 20 {
		return m.width - 16
	}
	return defaultChartWidth
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("SFD & BMD Calculator"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("Simply supported beam with a single point load"))
	b.WriteString("\n\n")

	rows := make([]string, 0, fieldCount)
	for i, in := range m.inputs {
		label := m.theme.Label.Render(fieldLabels[i])
		if i == m.focus {
			label = m.theme.Focused.Render(fieldLabels[i])
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, in.View()))
	}
	b.WriteString(m.theme.Card.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")

	switch m.st.Phase() {
	case state.PhaseResult:
		res := m.st.Result
		b.WriteString(diagram.DrawSummaryBox("RESULTS", []string{
			fmt.Sprintf("Ra = %.2f N   Rb = %.2f N", res.Reactions.Ra, res.Reactions.Rb),
			"Max Shear Force:    " + res.MaxShear + " N",
			"Max Bending Moment: " + res.MaxMoment + " Nm",
		}))
		w := m.chartWidth()
		b.WriteString(diagram.DrawChart(res.Series.Shear, w, chartHeight, "Shear Force Diagram (N)"))
		b.WriteString(diagram.DrawChart(res.Series.Moment, w, chartHeight, "Bending Moment Diagram (Nm)"))
	default:
		if m.st.Err != "" {
			b.WriteString("\n")
			b.WriteString(m.theme.Error.Render(m.st.Err))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("tab/shift+tab: move • enter: calculate • ctrl+r: reset • esc: quit"))
	b.WriteString("\n")
	return b.String()
}
