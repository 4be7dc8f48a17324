package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wheelibin/lifxbridge/internal/lights"
)

type lightsUpdateMessage struct {
	entities []*lights.LightEntity
	err      error
}

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var statusErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("203"))

type LifxTUI struct {
	teaProgram *tea.Program
}

func NewLifxTUI(initial []*lights.LightEntity) *LifxTUI {
	m := NewModel(initial)
	p := tea.NewProgram(m, tea.WithAltScreen())

	return &LifxTUI{p}
}

// Run blocks until the user quits.
func (t *LifxTUI) Run() error {
	_, err := t.teaProgram.Run()
	return err
}

// RefreshLights pushes the latest light state into the running UI.
func (t *LifxTUI) RefreshLights(entities []*lights.LightEntity, err error) {
	t.teaProgram.Send(lightsUpdateMessage{entities: entities, err: err})
}

type Model struct {
	table  table.Model
	status string
}

func NewModel(initial []*lights.LightEntity) *Model {

	columns := []table.Column{
		{Title: "Light", Width: 24},
		{Title: "Available", Width: 9},
		{Title: "On", Width: 5},
		{Title: "Brightness", Width: 10},
		{Title: "Mode", Width: 10},
		{Title: "Kelvin", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(entityRows(initial)),
		table.WithFocused(true),
		table.WithHeight(12),
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

	return &Model{table: t}
}

func entityRows(entities []*lights.LightEntity) []table.Row {
	rows := make([]table.Row, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, []string{
			e.Label(),
			fmt.Sprint(e.Available()),
			fmt.Sprint(e.IsOn()),
			fmt.Sprint(e.Brightness()),
			string(e.ColorMode()),
			fmt.Sprint(e.ColorTempKelvin()),
		})
	}
	return rows
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

	case lightsUpdateMessage:
		m.table.SetRows(entityRows(msg.entities))
		m.table.UpdateViewport()
		if msg.err != nil {
			m.status = statusErrorStyle.Render(fmt.Sprintf("refresh failed, showing last known state (%s)", msg.err))
		} else {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	return baseStyle.Render(m.table.View()) + "\n" + m.status
}
