// Package calendar projects an event collection onto a month grid. Day
// bucketing compares local calendar dates only, so an event's time of day
// never affects which cell it lands in.
package calendar

import (
	"time"

	"github.com/okian/planner/internal/domain/event"
	"github.com/okian/planner/internal/domain/query"
)

// Cell is one grid position of a displayed month. Padding cells preceding
// day 1 carry a zero Day and no date.
type Cell struct {
	Day    int           `json:"day"`
	Date   time.Time     `json:"date,omitzero"`
	Events []event.Event `json:"events,omitempty"`
}

// Padding reports whether the cell is a leading placeholder before day 1.
func (c Cell) Padding() bool {
	return c.Day == 0
}

// Grid covers one month: one leading padding cell per weekday offset of the
// 1st (Sunday-start week), then one cell per day in order. No trailing
// padding is produced.
type Grid struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Cells []Cell     `json:"cells"`
}

// MonthGrid builds the grid for the month containing ref, bucketing events
// by their local calendar date in loc. Each day's events are listed in
// ascending datetime order.
func MonthGrid(ref time.Time, events []event.Event, loc *time.Location) Grid {
	if loc == nil {
		loc = time.Local
	}
	ref = ref.In(loc)
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	days := daysIn(ref.Year(), ref.Month(), loc)

	g := Grid{
		Year:  ref.Year(),
		Month: ref.Month(),
		Cells: make([]Cell, 0, int(first.Weekday())+days),
	}
	for i := 0; i < int(first.Weekday()); i++ {
		g.Cells = append(g.Cells, Cell{})
	}
	for day := 1; day <= days; day++ {
		date := time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, loc)
		g.Cells = append(g.Cells, Cell{
			Day:    day,
			Date:   date,
			Events: EventsOn(events, date),
		})
	}
	return g
}

// EventsOn returns the events whose datetime falls on the same local
// calendar date as day, ordered ascending by datetime.
func EventsOn(events []event.Event, day time.Time) []event.Event {
	var out []event.Event
	for _, e := range events {
		if SameDay(e.Datetime, day) {
			out = append(out, e)
		}
	}
	query.Sort(out, query.SortByDate)
	return out
}

// SameDay reports whether a and b fall on the same calendar date in b's
// location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether date shares a calendar day with now.
func IsToday(date, now time.Time) bool {
	return SameDay(now, date)
}

// AddMonths shifts ref by delta calendar months, clamping the day of month
// so that leaving a long month never fabricates an overflowed date
// (January 31 minus one month is December 31; March 31 minus one month is
// the last day of February).
func AddMonths(ref time.Time, delta int) time.Time {
	year, month, day := ref.Date()
	first := time.Date(year, month, 1, ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
	shifted := first.AddDate(0, delta, 0)
	if last := daysIn(shifted.Year(), shifted.Month(), ref.Location()); day > last {
		day = last
	}
	return time.Date(shifted.Year(), shifted.Month(), day,
		ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month, loc *time.Location) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
