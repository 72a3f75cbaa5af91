package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
	"github.com/MrJamesThe3rd/placebi/internal/money"
)

// SetupDoneMsg is emitted once the restaurant profile has been saved.
type SetupDoneMsg struct{}

type setupValues struct {
	name     string
	location string
	typ      ledger.RestaurantType
	currency string
}

// SetupModel creates the restaurant profile, or edits it when one exists.
type SetupModel struct {
	CommonModel
	svc   *ledger.Service
	entry *entry.Form

	form    *huh.Form
	values  *setupValues
	current *ledger.Restaurant
	err     error
}

func NewSetupModel(svc *ledger.Service, f *entry.Form) SetupModel {
	m := SetupModel{svc: svc, entry: f, values: &setupValues{
		typ:      ledger.RestaurantTypeRestaurant,
		currency: money.DefaultCurrency,
	}}

	if r, ok := svc.Restaurant(); ok {
		m.current = &r
		m.values.name = r.Name
		m.values.location = r.Location
		m.values.typ = r.Type
		m.values.currency = r.Currency
	}

	m.form = m.newForm()

	return m
}

func (m SetupModel) newForm() *huh.Form {
	types := make([]huh.Option[ledger.RestaurantType], 0, len(ledger.RestaurantTypes))
	for _, t := range ledger.RestaurantTypes {
		types = append(types, huh.NewOption(entry.TypeLabel(t), t))
	}

	currencies := make([]huh.Option[string], 0, len(money.Offered))
	for _, c := range money.Offered {
		currencies = append(currencies, huh.NewOption(c, c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nom du restaurant").
				Value(&m.values.name).
				Validate(huh.ValidateNotEmpty()),

			huh.NewInput().
				Key("location").
				Title("Localisation").
				Placeholder("Dakar, Plateau").
				Value(&m.values.location).
				Validate(huh.ValidateNotEmpty()),

			huh.NewSelect[ledger.RestaurantType]().
				Key("type").
				Title("Type d'établissement").
				Options(types...).
				Value(&m.values.typ),

			huh.NewSelect[string]().
				Key("currency").
				Title("Devise").
				Options(currencies...).
				Value(&m.values.currency),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m SetupModel) Title() string { return "Configuration du restaurant" }
func (m SetupModel) ShortHelp() string {
	if m.current == nil {
		return "Entrée: valider | Ctrl+C: quitter"
	}

	return "Entrée: valider | Échap: annuler"
}

func (m SetupModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case setupSaveMsg:
		if msg.err != nil {
			m.err = msg.err
			m.form = m.newForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return SetupDoneMsg{} }

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.current != nil {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m SetupModel) View() string {
	intro := "Bienvenue ! Configurez votre restaurant pour commencer."
	if m.current != nil {
		intro = "Modifier le profil du restaurant."
	}

	errStr := ""
	if m.err != nil {
		errStr = "\n\n" + renderError(m.err)
	}

	return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf(
		"%s\n%s\n\n%s%s\n\n%s",
		titleStyle.Render(m.Title()),
		faintStyle.Render(intro),
		m.form.View(),
		errStr,
		faintStyle.Render(m.ShortHelp()),
	))
}

type setupSaveMsg struct {
	err error
}

func (m SetupModel) saveCmd() tea.Cmd {
	in := entry.RestaurantInput{
		Name:     m.values.name,
		Location: m.values.location,
		Type:     m.values.typ,
		Currency: m.values.currency,
	}

	return func() tea.Msg {
		r, err := m.entry.Restaurant(in, m.current)
		if err != nil {
			return setupSaveMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		return setupSaveMsg{err: m.svc.SetRestaurant(ctx, r)}
	}
}
