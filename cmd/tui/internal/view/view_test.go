package view_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/placebi/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/placebi/internal/finance"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "blank is zero", input: "  ", want: "0"},
		{name: "plain", input: "15000", want: "15000"},
		{name: "thousands spaces", input: "1 250 000", want: "1250000"},
		{name: "non-breaking spaces", input: "12\u00a0500", want: "12500"},
		{name: "decimal comma", input: "99,5", want: "99.5"},
		{name: "negative", input: "-10", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := view.ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestPeriodPicker(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC) }

	run := func(t *testing.T, p view.PeriodPicker, keys ...tea.KeyMsg) (view.PeriodPicker, tea.Msg) {
		t.Helper()

		var cmd tea.Cmd
		for _, k := range keys {
			p, cmd = p.Update(k)
		}

		if cmd == nil {
			return p, nil
		}

		return p, cmd()
	}

	t.Run("default selection is this month", func(t *testing.T) {
		_, msg := run(t, view.NewPeriodPicker(now), tea.KeyMsg{Type: tea.KeyEnter})

		sel, ok := msg.(view.PeriodSelectedMsg)
		require.True(t, ok)
		assert.Equal(t, finance.PeriodThisMonth, sel.Period)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), sel.Start)
		assert.Equal(t, 31, sel.End.Day())
	})

	t.Run("today", func(t *testing.T) {
		_, msg := run(t, view.NewPeriodPicker(now),
			tea.KeyMsg{Type: tea.KeyUp},
			tea.KeyMsg{Type: tea.KeyUp},
			tea.KeyMsg{Type: tea.KeyEnter},
		)

		sel, ok := msg.(view.PeriodSelectedMsg)
		require.True(t, ok)
		assert.Equal(t, finance.PeriodToday, sel.Period)
		assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), sel.Start)
	})

	t.Run("custom opens the range inputs", func(t *testing.T) {
		p, _ := run(t, view.NewPeriodPicker(now),
			tea.KeyMsg{Type: tea.KeyDown},
			tea.KeyMsg{Type: tea.KeyEnter},
		)

		assert.False(t, p.IsSelecting())

		p.Reset()
		assert.True(t, p.IsSelecting())
	})
	t.Run("custom range longer than a year is rejected", func(t *testing.T) {
		p, msg := run(t, view.NewPeriodPicker(now),
			tea.KeyMsg{Type: tea.KeyDown},
			tea.KeyMsg{Type: tea.KeyEnter},
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2020-01-01")},
			tea.KeyMsg{Type: tea.KeyTab},
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2024-01-01")},
			tea.KeyMsg{Type: tea.KeyEnter},
		)

		assert.Nil(t, msg)
		assert.Contains(t, p.View(), "366 jours")
	})

	t.Run("custom range within a year is selected", func(t *testing.T) {
		_, msg := run(t, view.NewPeriodPicker(now),
			tea.KeyMsg{Type: tea.KeyDown},
			tea.KeyMsg{Type: tea.KeyEnter},
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2024-02-01")},
			tea.KeyMsg{Type: tea.KeyTab},
			tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2024-02-29")},
			tea.KeyMsg{Type: tea.KeyEnter},
		)

		sel, ok := msg.(view.PeriodSelectedMsg)
		require.True(t, ok)
		assert.Equal(t, finance.PeriodCustom, sel.Period)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), sel.Start)
		assert.Equal(t, 29, sel.End.Day())
	})
}
