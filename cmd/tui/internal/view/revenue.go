package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

type revenueState int

const (
	revenueStateBrowse revenueState = iota
	revenueStateCreate
	revenueStateDelete
)

type revenueValues struct {
	mode    entry.RevenueMode
	date    string
	total   string
	amounts map[ledger.PaymentMethod]*string
	notes   string
	confirm bool
}

type RevenueModel struct {
	CommonModel
	svc   *ledger.Service
	entry *entry.Form

	state    revenueState
	table    table.Model
	revenues []ledger.DailyRevenue
	currency string
	form     *huh.Form
	values   *revenueValues

	err    error
	status string
}

func NewRevenueModel(svc *ledger.Service, f *entry.Form) RevenueModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Total", Width: 16},
		{Title: "Wave", Width: 14},
		{Title: "Orange Money", Width: 14},
		{Title: "Espèces", Width: 14},
		{Title: "Notes", Width: 30},
	}

	return RevenueModel{
		svc:   svc,
		entry: f,
		table: newTable(columns, 15),
	}
}

func (m RevenueModel) Title() string { return "Revenus" }
func (m RevenueModel) ShortHelp() string {
	if m.state != revenueStateBrowse {
		return "Entrée: valider | Échap: annuler"
	}

	return "Échap: retour | n: nouveau | d: supprimer | r: actualiser"
}

func (m RevenueModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m RevenueModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRevenuesMsg:
		if msg.setupRequired {
			return m, SetupRequired
		}

		m.revenues = msg.revenues
		m.currency = msg.currency
		m.refreshTable()

		return m, nil

	case revenueSaveMsg:
		if msg.err != nil {
			m.err = msg.err
			if _, ok := entry.AsFieldErrors(msg.err); ok {
				m.form = m.newForm()
				return m, m.form.Init()
			}
		} else {
			m.err = nil
			m.status = msg.status
		}

		m.closeForm()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	if m.state == revenueStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m RevenueModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "n":
			m.values = &revenueValues{
				mode: entry.RevenueGlobal,
				date: FormatDate(m.entry.Today()),
				amounts: map[ledger.PaymentMethod]*string{
					ledger.PaymentWave:        new(string),
					ledger.PaymentOrangeMoney: new(string),
					ledger.PaymentCash:        new(string),
				},
			}
			m.err = nil
			m.form = m.newForm()
			m.state = revenueStateCreate
			m.table.Blur()

			return m, m.form.Init()
		case "d":
			if m.selected() == nil {
				return m, nil
			}

			m.values = &revenueValues{}
			m.form = newConfirm("Supprimer ce revenu ?", &m.values.confirm)
			m.state = revenueStateDelete
			m.table.Blur()

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RevenueModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == revenueStateDelete {
		if !m.values.confirm {
			m.closeForm()
			return m, nil
		}

		return m, m.deleteCmd(m.selected().ID)
	}

	return m, m.createCmd()
}

func (m *RevenueModel) closeForm() {
	m.state = revenueStateBrowse
	m.form = nil
	m.table.Focus()
}

func (m RevenueModel) newForm() *huh.Form {
	v := m.values

	methods := make([]huh.Field, 0, len(ledger.PaymentMethods))
	for _, pm := range ledger.PaymentMethods {
		methods = append(methods, huh.NewInput().
			Key(string(pm)).
			Title(entry.PaymentLabel(pm)).
			Placeholder("0").
			Value(v.amounts[pm]).
			Validate(validateAmount))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[entry.RevenueMode]().
				Key("mode").
				Title("Mode de saisie").
				Options(
					huh.NewOption("Global (un montant par moyen de paiement)", entry.RevenueGlobal),
					huh.NewOption("Détaillé (total et lignes)", entry.RevenueDetailed),
				).
				Value(&v.mode),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("AAAA-MM-JJ").
				Value(&v.date).
				Validate(validateDate),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("total").
				Title("Montant total").
				Value(&v.total).
				Validate(validateAmount),
		).WithHideFunc(func() bool { return v.mode != entry.RevenueDetailed }),
		huh.NewGroup(methods...).Title("Moyens de paiement"),
		huh.NewGroup(
			huh.NewText().
				Key("notes").
				Title("Notes").
				CharLimit(1000).
				Value(&v.notes),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m RevenueModel) View() string {
	header := fmt.Sprintf("%s  %s", titleStyle.Render(m.Title()), faintStyle.Render(fmt.Sprintf("%d entrées", len(m.revenues))))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		borderStyle.Render(m.table.View()),
	)

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top,
			content,
			borderStyle.Padding(1, 2).MarginLeft(2).Render(m.form.View()),
		)
	}

	footer := faintStyle.Render(m.ShortHelp())
	if m.err != nil {
		footer = renderError(m.err) + "\n" + footer
	} else if m.status != "" {
		footer = activeStyle(m.status) + "\n" + footer
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, content, footer))
}

func (m RevenueModel) selected() *ledger.DailyRevenue {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.revenues) {
		return nil
	}

	return &m.revenues[idx]
}

func (m *RevenueModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.revenues))

	for _, r := range m.revenues {
		byMethod := map[ledger.PaymentMethod]decimal.Decimal{}
		for _, pm := range r.PaymentMethods {
			byMethod[pm.Method] = byMethod[pm.Method].Add(pm.Amount)
		}

		rows = append(rows, table.Row{
			FormatDate(r.Date),
			FormatAmount(r.TotalAmount, m.currency),
			FormatAmount(byMethod[ledger.PaymentWave], m.currency),
			FormatAmount(byMethod[ledger.PaymentOrangeMoney], m.currency),
			FormatAmount(byMethod[ledger.PaymentCash], m.currency),
			strings.ReplaceAll(r.Notes, "\n", " "),
		})
	}

	m.table.SetRows(rows)
}

type loadRevenuesMsg struct {
	revenues      []ledger.DailyRevenue
	currency      string
	setupRequired bool
}

type revenueSaveMsg struct {
	status string
	err    error
}

func (m RevenueModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		rest, ok := m.svc.Restaurant()
		if !ok {
			return loadRevenuesMsg{setupRequired: true}
		}

		return loadRevenuesMsg{revenues: m.svc.Snapshot().Revenues, currency: rest.Currency}
	}
}

func (m RevenueModel) createCmd() tea.Cmd {
	v := *m.values

	return func() tea.Msg {
		rest, ok := m.svc.Restaurant()
		if !ok {
			return SetupRequiredMsg{}
		}

		in := entry.RevenueInput{
			Date:  strings.TrimSpace(v.date),
			Mode:  v.mode,
			Notes: v.notes,
		}

		if v.mode == entry.RevenueDetailed && strings.TrimSpace(v.total) != "" {
			total, _ := ParseAmount(v.total)
			in.TotalAmount = decimal.NewNullDecimal(total)
		}

		for _, pm := range ledger.PaymentMethods {
			amount, _ := ParseAmount(*v.amounts[pm])
			in.PaymentMethods = append(in.PaymentMethods, entry.PaymentInput{Method: pm, Amount: amount})
		}

		r, err := m.entry.Revenue(in, rest.ID)
		if err != nil {
			return revenueSaveMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.AddRevenue(ctx, r); err != nil {
			return revenueSaveMsg{err: err}
		}

		return revenueSaveMsg{status: fmt.Sprintf("Revenu du %s enregistré", FormatDate(r.Date))}
	}
}

func (m RevenueModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.DeleteRevenue(ctx, id); err != nil {
			return revenueSaveMsg{err: err}
		}

		return revenueSaveMsg{status: "Revenu supprimé"}
	}
}
