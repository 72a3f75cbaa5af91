// Package params reads query parameters shared by several handlers.
package params

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/placebi/internal/entry"
	"github.com/MrJamesThe3rd/placebi/internal/finance"
)

var farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// DayRange reads start_date and end_date (YYYY-MM-DD) as day bounds in loc.
// A missing bound leaves that side open.
func DayRange(r *http.Request, loc *time.Location) (time.Time, time.Time, error) {
	q := r.URL.Query()

	from := time.Time{}
	to := farFuture

	if s := q.Get("start_date"); s != "" {
		t, err := entry.ParseDay(s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date: %w", err)
		}

		from = t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := entry.ParseDay(s, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date: %w", err)
		}

		to = t
	}

	start, end := finance.DayBounds(finance.DayOf(from), finance.DayOf(to), loc)
	if from.IsZero() {
		start = from
	}

	return start, end, nil
}
