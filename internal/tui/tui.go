package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/wheelibin/lumos/internal/colour"
	"github.com/wheelibin/lumos/internal/models"
)

type lightsMessage struct {
	lights []models.Light
}

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

type LumosTUI struct {
	teaProgram *tea.Program
}

func NewLumosTUI(lights []models.Light) LumosTUI {
	p := tea.NewProgram(NewModel(lights), tea.WithAltScreen())
	return LumosTUI{p}
}

// Run shows the UI until the user quits.
func (t LumosTUI) Run() error {
	_, err := t.teaProgram.Run()
	return err
}

func (t LumosTUI) RefreshLights(lights []models.Light) {
	t.teaProgram.Send(lightsMessage{lights: lights})
}

func (t LumosTUI) Quit() {
	t.teaProgram.Quit()
}

type Model struct {
	table table.Model
}

func NewModel(lights []models.Light) Model {

	columns := []table.Column{
		{Title: "Light", Width: 20},
		{Title: "On", Width: 5},
		{Title: "Brightness", Width: 10},
		{Title: "Colour", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows(lights)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{t}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

	case lightsMessage:
		m.table.SetRows(rows(msg.lights))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(message)
	return m, cmd
}

func (m Model) View() string {
	return baseStyle.Render(m.table.View()) + "\n"
}

// Rows is the table content, for tests.
func (m Model) Rows() []table.Row {
	return m.table.Rows()
}

func rows(lights []models.Light) []table.Row {
	return lo.Map(lights, func(l models.Light, _ int) table.Row {
		return table.Row{l.Name, onText(l.State.On), intText(l.State.Brightness), colourText(l.State)}
	})
}

func onText(on *bool) string {
	if on == nil {
		return "-"
	}
	if *on {
		return "on"
	}
	return "off"
}

func intText(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func colourText(state models.LightProperties) string {
	switch {
	case state.ColourHex != nil:
		if name, found := colour.NameOf(*state.ColourHex); found {
			return name
		}
		return "#" + *state.ColourHex
	case state.ColourX != nil && state.ColourY != nil:
		c := colour.XY{X: *state.ColourX, Y: *state.ColourY}.RGB()
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	case state.Hue != nil || state.Saturation != nil:
		return fmt.Sprintf("hue %s sat %s", intText(state.Hue), intText(state.Saturation))
	case state.ColourTemperature != nil:
		return fmt.Sprintf("temp %d", *state.ColourTemperature)
	default:
		return "-"
	}
}
