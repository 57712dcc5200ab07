package aggregation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange = errors.New("start date must not be after end date")
)

// PeriodKind identifies how a Period resolves to a window
type PeriodKind string

const (
	PeriodNone    PeriodKind = ""
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
	PeriodYearly  PeriodKind = "yearly"
	PeriodMonth   PeriodKind = "month"
	PeriodRange   PeriodKind = "range"
)

const lastNanosecondOfDay = 999_000_000

// PeriodWindow is an inclusive time range
type PeriodWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window, bounds included
func (w PeriodWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Period is a period specifier. The zero value, and a nil *Period, apply no
// filtering at all.
type Period struct {
	Kind      PeriodKind
	Year      int
	Month     time.Month
	StartDate time.Time
	EndDate   time.Time
}

// Relative periods resolve against now in UTC, the same zone CalendarMonth
// and the stored timestamps use.

// Weekly is the last seven days, restricted to now's calendar month.
func Weekly() *Period { return &Period{Kind: PeriodWeekly} }

// Monthly is now's calendar month.
func Monthly() *Period { return &Period{Kind: PeriodMonthly} }

// Yearly is now's calendar year.
func Yearly() *Period { return &Period{Kind: PeriodYearly} }

// CalendarMonth is a fixed calendar month in UTC.
func CalendarMonth(year int, month time.Month) *Period {
	return &Period{Kind: PeriodMonth, Year: year, Month: month}
}

// Range is an explicit window, inclusive on both ends.
func Range(start, end time.Time) *Period {
	return &Period{Kind: PeriodRange, StartDate: start, EndDate: end}
}

// ParseRelativePeriod maps "weekly", "monthly" and "yearly" to a Period.
// Anything else yields nil, which filters nothing.
func ParseRelativePeriod(name string) *Period {
	switch PeriodKind(name) {
	case PeriodWeekly:
		return Weekly()
	case PeriodMonthly:
		return Monthly()
	case PeriodYearly:
		return Yearly()
	default:
		return nil
	}
}

// MonthWindow returns [first day 00:00:00.000, last day 23:59:59.999] of the
// given month in UTC. The last day is found as day 0 of the following month.
func MonthWindow(year int, month time.Month) PeriodWindow {
	return PeriodWindow{
		Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, month+1, 0, 23, 59, 59, lastNanosecondOfDay, time.UTC),
	}
}

func yearWindow(year int) PeriodWindow {
	return PeriodWindow{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 23, 59, 59, lastNanosecondOfDay, time.UTC),
	}
}

// RangeWindow builds an explicit window and rejects inverted bounds
func RangeWindow(start, end time.Time) (PeriodWindow, error) {
	if start.After(end) {
		return PeriodWindow{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return PeriodWindow{Start: start, End: end}, nil
}

// EndOfDay moves t to 23:59:59.999 of the same day, keeping its location.
// Handlers use it so that an endDate of 2024-03-31 covers the whole day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, lastNanosecondOfDay, t.Location())
}

// Window resolves the specifier against now. ok is false when the period
// does not restrict records (nil, zero value, unknown kind or a month number
// outside 1..12).
//
// For weekly periods the returned window is [now-7d, now]; FilterRecords
// additionally requires records to share now's month and year.
func (p *Period) Window(now time.Time) (window PeriodWindow, ok bool, err error) {
	if p == nil {
		return PeriodWindow{}, false, nil
	}
	now = now.UTC()

	switch p.Kind {
	case PeriodWeekly:
		return PeriodWindow{Start: now.Add(-7 * 24 * time.Hour), End: now}, true, nil
	case PeriodMonthly:
		return MonthWindow(now.Year(), now.Month()), true, nil
	case PeriodYearly:
		return yearWindow(now.Year()), true, nil
	case PeriodMonth:
		if p.Month < time.January || p.Month > time.December {
			return PeriodWindow{}, false, nil
		}
		return MonthWindow(p.Year, p.Month), true, nil
	case PeriodRange:
		w, err := RangeWindow(p.StartDate, p.EndDate)
		if err != nil {
			return PeriodWindow{}, false, err
		}
		return w, true, nil
	default:
		return PeriodWindow{}, false, nil
	}
}

// Previous returns the period of the same kind immediately before this one,
// relative to now. Explicit ranges shift back by their own length. A nil or
// unrestricted period has no predecessor.
func (p *Period) Previous(now time.Time) *Period {
	if p == nil {
		return nil
	}
	now = now.UTC()

	switch p.Kind {
	case PeriodWeekly:
		// weekly keeps its month constraint, so compare against the previous
		// seven days as an explicit range
		end := now.Add(-7 * 24 * time.Hour)
		return Range(end.Add(-7*24*time.Hour), end.Add(-time.Millisecond))
	case PeriodMonthly:
		prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		w := MonthWindow(prev.Year(), prev.Month())
		return Range(w.Start, w.End)
	case PeriodYearly:
		w := yearWindow(now.Year() - 1)
		return Range(w.Start, w.End)
	case PeriodMonth:
		first := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return CalendarMonth(first.Year(), first.Month())
	case PeriodRange:
		if p.StartDate.After(p.EndDate) {
			return nil
		}
		span := p.EndDate.Sub(p.StartDate)
		end := p.StartDate.Add(-time.Millisecond)
		return Range(end.Add(-span), end)
	default:
		return nil
	}
}

// FilterRecords returns the records that fall inside the period, keeping
// their relative order. A nil or unrecognised period returns every record.
// The input slice is never modified.
func FilterRecords(records []Record, p *Period, now time.Time) ([]Record, error) {
	now = now.UTC()
	window, ok, err := p.Window(now)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(records))
	if !ok {
		return append(out, records...), nil
	}

	for _, r := range records {
		if !window.Contains(r.OccurredAt) {
			continue
		}
		if p.Kind == PeriodWeekly && !sameMonth(r.OccurredAt.UTC(), now) {
			continue
		}
		out = append(out, r)
	}

	return out, nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
