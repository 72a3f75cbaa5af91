package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/finance"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

type dashboardState int

const (
	dashboardStateView dashboardState = iota
	dashboardStatePick
)

type DashboardModel struct {
	CommonModel
	svc *ledger.Service
	now func() time.Time

	state    dashboardState
	picker   PeriodPicker
	period   finance.Period
	currency string

	data   finance.DashboardView
	series table.Model
	err    error
}

func NewDashboardModel(svc *ledger.Service, now func() time.Time) DashboardModel {
	columns := []table.Column{
		{Title: "Jour", Width: 12},
		{Title: "Revenus", Width: 16},
		{Title: "Dépenses", Width: 16},
		{Title: "Marge", Width: 16},
	}

	return DashboardModel{
		svc:    svc,
		now:    now,
		picker: NewPeriodPicker(now),
		period: finance.PeriodThisMonth,
		series: newTable(columns, 10),
	}
}

func (m DashboardModel) Title() string { return "Tableau de bord" }
func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStatePick {
		return "Entrée: choisir | Échap: annuler"
	}

	return "Échap: retour | p: période | r: actualiser"
}

func (m DashboardModel) Init() tea.Cmd {
	start, end, err := finance.PeriodRange(m.period, m.now())
	if err != nil {
		return func() tea.Msg { return dashboardMsg{err: err} }
	}

	return m.computeCmd(m.period, start, end)
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		if msg.setupRequired {
			return m, SetupRequired
		}

		m.err = msg.err
		if msg.err == nil {
			m.period = msg.period
			m.currency = msg.currency
			m.data = msg.data
			m.refreshTable()
		}

		return m, nil

	case PeriodSelectedMsg:
		m.state = dashboardStateView
		m.picker.Reset()

		return m, m.computeCmd(msg.Period, msg.Start, msg.End)

	case tea.WindowSizeMsg:
		m.series.SetHeight(max(msg.Height-24, 5))
		return m, nil
	}

	if m.state == dashboardStatePick {
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc && m.picker.IsSelecting() {
			m.state = dashboardStateView
			return m, nil
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, Back
		case "p":
			m.state = dashboardStatePick
			return m, nil
		case "r":
			return m, m.computeCmd(m.period, m.data.Start, m.data.End)
		}
	}

	var cmd tea.Cmd
	m.series, cmd = m.series.Update(msg)

	return m, cmd
}

func (m DashboardModel) View() string {
	if m.state == dashboardStatePick {
		return lipgloss.NewStyle().Padding(2).Render(m.picker.View())
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(renderError(m.err) + "\n\n(Échap pour revenir)")
	}

	header := fmt.Sprintf("%s  %s  du %s au %s",
		titleStyle.Render("Tableau de bord"),
		activeStyle(periodLabel(m.period)),
		FormatDate(m.data.Start),
		FormatDate(m.data.End),
	)

	kpis := m.data.KPIs
	kpiBox := borderStyle.Padding(0, 1).Render(fmt.Sprintf(
		"Revenus   %s\nDépenses  %s\nMarge     %s (%s)",
		FormatAmount(kpis.TotalRevenue, m.currency),
		FormatAmount(kpis.TotalExpenses, m.currency),
		FormatAmount(kpis.NetMargin, m.currency),
		FormatPercent(kpis.NetMarginPercentage),
	))

	var breakdown strings.Builder
	breakdown.WriteString("Moyens de paiement\n")

	for _, s := range m.data.Breakdown {
		fmt.Fprintf(&breakdown, "%-13s %16s %8s\n",
			entry.PaymentLabel(s.Method),
			FormatAmount(s.Amount, m.currency),
			FormatPercent(s.Percentage),
		)
	}

	breakdownBox := borderStyle.Padding(0, 1).Render(strings.TrimRight(breakdown.String(), "\n"))

	predictions := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPrediction("Fin de semaine", m.data.Week),
		m.renderPrediction("Fin du mois", m.data.Month),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.JoinHorizontal(lipgloss.Top, kpiBox, " ", breakdownBox),
		predictions,
		borderStyle.Render(m.series.View()),
		faintStyle.Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m DashboardModel) renderPrediction(title string, p finance.Prediction) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%d j restants)\n", title, p.RemainingDays)
	fmt.Fprintf(&b, "Revenus   %s\n", FormatAmount(p.PredictedRevenue, m.currency))
	fmt.Fprintf(&b, "Dépenses  %s\n", FormatAmount(p.PredictedExpenses, m.currency))
	fmt.Fprintf(&b, "Marge     %s (%s)", FormatAmount(p.PredictedNetMargin, m.currency), FormatPercent(p.PredictedNetMarginPercentage))

	for _, mp := range p.PaymentMethods {
		fmt.Fprintf(&b, "\n  %-12s %s", entry.PaymentLabel(mp.Method), FormatAmount(mp.PredictedAmount, m.currency))
	}

	return borderStyle.Padding(0, 1).MarginRight(1).Render(b.String())
}

func (m *DashboardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.data.Series))
	for _, p := range m.data.Series {
		rows = append(rows, table.Row{
			p.Day.String(),
			FormatAmount(p.Revenue, m.currency),
			FormatAmount(p.Expenses, m.currency),
			FormatAmount(p.NetMargin, m.currency),
		})
	}

	m.series.SetRows(rows)
}

type dashboardMsg struct {
	period        finance.Period
	currency      string
	data          finance.DashboardView
	setupRequired bool
	err           error
}

func (m DashboardModel) computeCmd(period finance.Period, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		rest, ok := m.svc.Restaurant()
		if !ok {
			return dashboardMsg{setupRequired: true}
		}

		data, err := finance.Dashboard(m.svc.Snapshot(), start, end, m.now())

		return dashboardMsg{period: period, currency: rest.Currency, data: data, err: err}
	}
}
