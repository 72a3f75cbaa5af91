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

type expenseState int

const (
	expenseStateBrowse expenseState = iota
	expenseStateCreate
	expenseStateDelete
)

type expenseValues struct {
	detailed bool
	date     string
	total    string
	lines    map[ledger.ExpenseCategory]*string
	notes    string
	confirm  bool
}

type ExpenseModel struct {
	CommonModel
	svc   *ledger.Service
	entry *entry.Form

	state    expenseState
	table    table.Model
	expenses []ledger.DailyExpense
	currency string
	form     *huh.Form
	values   *expenseValues

	err    error
	status string
}

func NewExpenseModel(svc *ledger.Service, f *entry.Form) ExpenseModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Total", Width: 16},
		{Title: "Type", Width: 10},
		{Title: "Détail", Width: 40},
		{Title: "Notes", Width: 30},
	}

	return ExpenseModel{
		svc:   svc,
		entry: f,
		table: newTable(columns, 15),
	}
}

func (m ExpenseModel) Title() string { return "Dépenses" }
func (m ExpenseModel) ShortHelp() string {
	if m.state != expenseStateBrowse {
		return "Entrée: valider | Échap: annuler"
	}

	return "Échap: retour | n: nouvelle | d: supprimer | r: actualiser"
}

func (m ExpenseModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ExpenseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadExpensesMsg:
		if msg.setupRequired {
			return m, SetupRequired
		}

		m.expenses = msg.expenses
		m.currency = msg.currency
		m.refreshTable()

		return m, nil

	case expenseSaveMsg:
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

	if m.state == expenseStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m ExpenseModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "n":
			m.values = &expenseValues{
				date:  FormatDate(m.entry.Today()),
				lines: make(map[ledger.ExpenseCategory]*string, len(ledger.ExpenseCategories)),
			}
			for _, c := range ledger.ExpenseCategories {
				m.values.lines[c] = new(string)
			}

			m.err = nil
			m.form = m.newForm()
			m.state = expenseStateCreate
			m.table.Blur()

			return m, m.form.Init()
		case "d":
			if m.selected() == nil {
				return m, nil
			}

			m.values = &expenseValues{}
			m.form = newConfirm("Supprimer cette dépense ?", &m.values.confirm)
			m.state = expenseStateDelete
			m.table.Blur()

			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpenseModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	if m.state == expenseStateDelete {
		if !m.values.confirm {
			m.closeForm()
			return m, nil
		}

		return m, m.deleteCmd(m.selected().ID)
	}

	return m, m.createCmd()
}

func (m *ExpenseModel) closeForm() {
	m.state = expenseStateBrowse
	m.form = nil
	m.table.Focus()
}

func (m ExpenseModel) newForm() *huh.Form {
	v := m.values

	categories := make([]huh.Field, 0, len(ledger.ExpenseCategories))
	for _, c := range ledger.ExpenseCategories {
		categories = append(categories, huh.NewInput().
			Key(string(c)).
			Title(entry.CategoryLabel(c)).
			Placeholder("0").
			Value(v.lines[c]).
			Validate(validateAmount))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("detailed").
				Title("Saisie détaillée par catégorie ?").
				Affirmative("Oui").
				Negative("Non").
				Value(&v.detailed),

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
		).WithHideFunc(func() bool { return v.detailed }),
		huh.NewGroup(categories...).
			Title("Catégories").
			WithHideFunc(func() bool { return !v.detailed }),
		huh.NewGroup(
			huh.NewText().
				Key("notes").
				Title("Notes").
				CharLimit(1000).
				Value(&v.notes),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ExpenseModel) View() string {
	header := fmt.Sprintf("%s  %s", titleStyle.Render(m.Title()), faintStyle.Render(fmt.Sprintf("%d entrées", len(m.expenses))))

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

func (m ExpenseModel) selected() *ledger.DailyExpense {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return nil
	}

	return &m.expenses[idx]
}

func (m *ExpenseModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenses))

	for _, e := range m.expenses {
		kind := "Simple"
		detail := ""

		if e.IsDetailed {
			kind = "Détaillée"

			parts := make([]string, 0, len(e.ExpenseLines))
			for _, l := range e.ExpenseLines {
				parts = append(parts, fmt.Sprintf("%s %s", entry.CategoryLabel(l.Category), FormatAmount(l.Amount, m.currency)))
			}

			detail = strings.Join(parts, ", ")
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			FormatAmount(e.TotalAmount, m.currency),
			kind,
			detail,
			strings.ReplaceAll(e.Notes, "\n", " "),
		})
	}

	m.table.SetRows(rows)
}

type loadExpensesMsg struct {
	expenses      []ledger.DailyExpense
	currency      string
	setupRequired bool
}

type expenseSaveMsg struct {
	status string
	err    error
}

func (m ExpenseModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		rest, ok := m.svc.Restaurant()
		if !ok {
			return loadExpensesMsg{setupRequired: true}
		}

		return loadExpensesMsg{expenses: m.svc.Snapshot().Expenses, currency: rest.Currency}
	}
}

func (m ExpenseModel) createCmd() tea.Cmd {
	v := *m.values

	return func() tea.Msg {
		rest, ok := m.svc.Restaurant()
		if !ok {
			return SetupRequiredMsg{}
		}

		in := entry.ExpenseInput{
			Date:       strings.TrimSpace(v.date),
			IsDetailed: v.detailed,
			Notes:      v.notes,
		}

		if v.detailed {
			for _, c := range ledger.ExpenseCategories {
				amount, _ := ParseAmount(*v.lines[c])
				in.ExpenseLines = append(in.ExpenseLines, entry.ExpenseLineInput{Category: c, Amount: amount})
			}
		} else if strings.TrimSpace(v.total) != "" {
			total, _ := ParseAmount(v.total)
			in.TotalAmount = decimal.NewNullDecimal(total)
		}

		e, err := m.entry.Expense(in, rest.ID)
		if err != nil {
			return expenseSaveMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.AddExpense(ctx, e); err != nil {
			return expenseSaveMsg{err: err}
		}

		return expenseSaveMsg{status: fmt.Sprintf("Dépense du %s enregistrée", FormatDate(e.Date))}
	}
}

func (m ExpenseModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.DeleteExpense(ctx, id); err != nil {
			return expenseSaveMsg{err: err}
		}

		return expenseSaveMsg{status: "Dépense supprimée"}
	}
}
