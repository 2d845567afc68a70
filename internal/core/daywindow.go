package core

import "time"

// DateRange is an inclusive [Start, End] instant pair. Every day boundary
// in the system goes through DayWindow or MonthWindow so that a record
// dated anywhere within a day is found by every query for that day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// DayWindow resolves the calendar day containing t, in the given location,
// to the instant pair [00:00:00.000, 23:59:59.999]. The end is the next
// calendar midnight minus a millisecond, not start+24h: DST-transition
// days are 23 or 25 hours long and a fixed offset would leak into the
// neighboring day or cut the last hour off.
func DayWindow(t time.Time, loc *time.Location) DateRange {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 0, 1).Add(-time.Millisecond),
	}
}

// MonthWindow resolves (year, month) to the instant pair covering the
// whole month, first day 00:00:00.000 through last day 23:59:59.999.
func MonthWindow(year, month int, loc *time.Location) (DateRange, error) {
	if month < 1 || month > 12 {
		return DateRange{}, ErrInvalidMonth
	}
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Millisecond),
	}, nil
}
