package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

// EditProfileMsg asks the root model to open the setup form on the current profile.
type EditProfileMsg struct{}

// SettingsModel shows the restaurant profile and clears all data on request.
type SettingsModel struct {
	CommonModel
	svc *ledger.Service

	restaurant ledger.Restaurant
	revenues   int
	expenses   int

	form    *huh.Form
	confirm *bool
	err     error
}

func NewSettingsModel(svc *ledger.Service) SettingsModel {
	return SettingsModel{svc: svc}
}

func (m SettingsModel) Title() string { return "Paramètres" }
func (m SettingsModel) ShortHelp() string {
	if m.form != nil {
		return "Entrée: valider | Échap: annuler"
	}

	return "Échap: retour | e: modifier le profil | x: réinitialiser"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsMsg:
		if msg.setupRequired {
			return m, SetupRequired
		}

		m.restaurant = msg.restaurant
		m.revenues = msg.revenues
		m.expenses = msg.expenses

		return m, nil

	case resetMsg:
		m.form = nil
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		return m, SetupRequired

	case tea.KeyMsg:
		if m.form == nil {
			switch msg.String() {
			case "esc":
				return m, Back
			case "e":
				return m, func() tea.Msg { return EditProfileMsg{} }
			case "x":
				m.confirm = new(bool)
				m.form = newConfirm("Effacer le profil et tout l'historique ?", m.confirm)

				return m, m.form.Init()
			}

			return m, nil
		}

		if msg.Type == tea.KeyEsc {
			m.form = nil
			return m, nil
		}
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirm {
		m.form = nil
		return m, nil
	}

	return m, m.resetCmd()
}

func (m SettingsModel) View() string {
	r := m.restaurant

	profile := borderStyle.Padding(0, 1).Render(fmt.Sprintf(
		"Nom           %s\nLocalisation  %s\nType          %s\nDevise        %s\nCréé le       %s\n\n%d revenus, %d dépenses",
		r.Name,
		r.Location,
		entry.TypeLabel(r.Type),
		r.Currency,
		FormatDate(r.CreatedAt),
		m.revenues,
		m.expenses,
	))

	parts := []string{titleStyle.Render(m.Title()), "", profile}

	if m.form != nil {
		parts = append(parts, "", m.form.View())
	}

	if m.err != nil {
		parts = append(parts, "", renderError(m.err))
	}

	parts = append(parts, "", faintStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

type settingsMsg struct {
	restaurant    ledger.Restaurant
	revenues      int
	expenses      int
	setupRequired bool
}

type resetMsg struct {
	err error
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		st := m.svc.Snapshot()
		if st.Restaurant == nil {
			return settingsMsg{setupRequired: true}
		}

		return settingsMsg{restaurant: *st.Restaurant, revenues: len(st.Revenues), expenses: len(st.Expenses)}
	}
}

func (m SettingsModel) resetCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return resetMsg{err: m.svc.Reset(ctx)}
	}
}
