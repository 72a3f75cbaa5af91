package finance

import (
	"errors"
	"fmt"
	"time"
)

// MaxRangeDays bounds a custom range, both ends included.
const MaxRangeDays = 366

var ErrRangeTooLong = errors.New("range too long")

// Period selects the dashboard date range.
type Period string

const (
	PeriodToday     Period = "today"
	PeriodThisWeek  Period = "this_week"
	PeriodThisMonth Period = "this_month"
	PeriodCustom    Period = "custom"
)

var Periods = []Period{PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodCustom}

func (p Period) Valid() bool {
	switch p {
	case PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodCustom:
		return true
	}

	return false
}

// PeriodRange returns the day bounds of a preset period around now. Weeks start
// on Monday. PeriodCustom has no preset range and returns an error.
func PeriodRange(p Period, now time.Time) (time.Time, time.Time, error) {
	today := DayOf(now)

	var from, to Day

	switch p {
	case PeriodToday:
		from, to = today, today
	case PeriodThisWeek:
		from = today.AddDays(-((int(now.Weekday()) + 6) % 7))
		to = from.AddDays(6)
	case PeriodThisMonth:
		from = Day{Year: today.Year, Month: today.Month, Day: 1}
		to = Day{Year: today.Year, Month: today.Month, Day: daysInMonth(now)}
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("no preset range for period %q", p)
	}

	start, end := DayBounds(from, to, now.Location())

	return start, end, nil
}

// DayBounds returns midnight of from and the last nanosecond of to, in loc.
func DayBounds(from, to Day, loc *time.Location) (time.Time, time.Time) {
	return from.Time(loc), to.AddDays(1).Time(loc).Add(-time.Nanosecond)
}

// CustomRange returns the day bounds of [from, to]. Ranges spanning more than
// MaxRangeDays days return ErrRangeTooLong. An inverted range is accepted and
// selects nothing.
func CustomRange(from, to Day, loc *time.Location) (time.Time, time.Time, error) {
	if to.After(from.AddDays(MaxRangeDays - 1)) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s to %s exceeds %d days", ErrRangeTooLong, from, to, MaxRangeDays)
	}

	start, end := DayBounds(from, to, loc)

	return start, end, nil
}
