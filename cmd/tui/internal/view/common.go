package view

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SetupRequiredMsg asks the root model to show the setup screen.
type SetupRequiredMsg struct{}

func SetupRequired() tea.Msg {
	return SetupRequiredMsg{}
}

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// renderError shows err inline. Field errors from the entry forms are listed one per line.
func renderError(err error) string {
	if err == nil {
		return ""
	}

	fe, ok := entry.AsFieldErrors(err)
	if !ok {
		return errorStyle.Render(fmt.Sprintf("Erreur : %v", err))
	}

	var b strings.Builder
	for _, f := range slices.Sorted(maps.Keys(fe)) {
		fmt.Fprintf(&b, "• %s : %s\n", f, fe[f])
	}

	return errorStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func newTable(columns []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

	return t
}

func newConfirm(title string, value *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Oui").
				Negative("Non").
				Value(value),
		),
	).WithWidth(45).WithShowHelp(false)
}
