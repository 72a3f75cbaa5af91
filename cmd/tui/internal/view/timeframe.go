package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/placebi/internal/finance"
)

func periodLabel(p finance.Period) string {
	switch p {
	case finance.PeriodToday:
		return "Aujourd'hui"
	case finance.PeriodThisWeek:
		return "Cette semaine"
	case finance.PeriodThisMonth:
		return "Ce mois"
	case finance.PeriodCustom:
		return "Période personnalisée"
	}

	return string(p)
}

// PeriodSelectedMsg is emitted when the user has picked a dashboard range.
type PeriodSelectedMsg struct {
	Period finance.Period
	Start  time.Time
	End    time.Time
}

type pickerState int

const (
	pickerStateSelect pickerState = iota
	pickerStateCustom
)

// PeriodPicker selects one of the dashboard periods, or a custom range.
type PeriodPicker struct {
	state    pickerState
	selected int
	now      func() time.Time

	startInput textinput.Model
	endInput   textinput.Model
	focusIndex int

	err error
}

func NewPeriodPicker(now func() time.Time) PeriodPicker {
	si := textinput.New()
	si.Placeholder = "AAAA-MM-JJ"
	si.CharLimit = 10
	si.Width = 12
	si.Prompt = "Début : "

	ei := textinput.New()
	ei.Placeholder = "AAAA-MM-JJ"
	ei.CharLimit = 10
	ei.Width = 12
	ei.Prompt = "Fin :   "

	return PeriodPicker{
		state:      pickerStateSelect,
		selected:   2,
		now:        now,
		startInput: si,
		endInput:   ei,
	}
}

func (m PeriodPicker) Init() tea.Cmd {
	return nil
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case pickerStateSelect:
			return m.updateSelect(msg)
		case pickerStateCustom:
			if next, cmd, handled := m.updateCustom(msg); handled {
				return next, cmd
			}
		}
	}

	if m.state == pickerStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m PeriodPicker) updateSelect(msg tea.KeyMsg) (PeriodPicker, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < len(finance.Periods)-1 {
			m.selected++
		}
	case tea.KeyEnter:
		period := finance.Periods[m.selected]
		if period == finance.PeriodCustom {
			m.state = pickerStateCustom
			m.focusIndex = 0
			m.startInput.Focus()

			return m, textinput.Blink
		}

		start, end, err := finance.PeriodRange(period, m.now())
		if err != nil {
			m.err = err
			return m, nil
		}

		return m, func() tea.Msg {
			return PeriodSelectedMsg{Period: period, Start: start, End: end}
		}
	}

	return m, nil
}

func (m PeriodPicker) updateCustom(msg tea.KeyMsg) (PeriodPicker, tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.focusIndex = (m.focusIndex + 1) % 2
		m.startInput.Blur()
		m.endInput.Blur()

		if m.focusIndex == 0 {
			m.startInput.Focus()
			return m, textinput.Blink, true
		}

		m.endInput.Focus()

		return m, textinput.Blink, true

	case "enter":
		loc := m.now().Location()

		from, err := time.ParseInLocation(time.DateOnly, m.startInput.Value(), loc)
		if err != nil {
			m.err = fmt.Errorf("date de début invalide (AAAA-MM-JJ)")
			return m, nil, true
		}

		to, err := time.ParseInLocation(time.DateOnly, m.endInput.Value(), loc)
		if err != nil {
			m.err = fmt.Errorf("date de fin invalide (AAAA-MM-JJ)")
			return m, nil, true
		}

		if to.Before(from) {
			m.err = fmt.Errorf("la fin précède le début")
			return m, nil, true
		}

		start, end, err := finance.CustomRange(finance.DayOf(from), finance.DayOf(to), loc)
		if err != nil {
			m.err = fmt.Errorf("la période ne peut pas dépasser %d jours", finance.MaxRangeDays)
			return m, nil, true
		}

		m.err = nil

		return m, func() tea.Msg {
			return PeriodSelectedMsg{Period: finance.PeriodCustom, Start: start, End: end}
		}, true

	case "esc":
		m.state = pickerStateSelect
		m.err = nil

		return m, nil, true
	}

	return m, nil, false
}

func (m PeriodPicker) updateInputs(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	var cmds []tea.Cmd
	var c tea.Cmd

	m.startInput, c = m.startInput.Update(msg)
	cmds = append(cmds, c)
	m.endInput, c = m.endInput.Update(msg)
	cmds = append(cmds, c)

	return m, tea.Batch(cmds...)
}

func (m PeriodPicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = "\n\n" + renderError(m.err)
	}

	if m.state == pickerStateCustom {
		return fmt.Sprintf(
			"Période personnalisée :\n\n%s\n%s\n\n(Entrée pour valider, Tab pour changer, Échap pour revenir)%s",
			m.startInput.View(),
			m.endInput.View(),
			errStr,
		)
	}

	s := "Choisir la période :\n\n"
	for i, p := range finance.Periods {
		cursor := " "
		if m.selected == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, periodLabel(p))
	}

	s += "\n(Entrée pour choisir, Échap pour revenir)"

	return s + errStr
}

// IsSelecting reports whether the picker shows the period list rather than the custom inputs.
func (m PeriodPicker) IsSelecting() bool {
	return m.state == pickerStateSelect
}

func (m *PeriodPicker) Reset() {
	m.state = pickerStateSelect
	m.err = nil
	m.startInput.SetValue("")
	m.endInput.SetValue("")
}
