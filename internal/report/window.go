package report

import (
	"time"

	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/models"
)

// Window is the inclusive time range a report covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolve maps a report selector to its time window relative to now. All
// boundaries are full-day boundaries in UTC: records and windows share one
// clock and one layout so the store's lexical comparison stays coherent.
//
//	daily:   today 00:00:00.000000 .. today 23:59:59.999999
//	week:    Monday of the current week 00:00:00.000000 .. today 23:59:59.999999
//	month:   day 1 of the current month 00:00:00.000000 .. today 23:59:59.999999
//
// An unknown selector falls back to the daily window.
func Resolve(selector string, now time.Time) Window {
	now = now.UTC()
	year, month, day := now.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(year, month, day, 23, 59, 59, 999999000, time.UTC)

	start := dayStart
	switch selector {
	case "week":
		// time.Weekday counts Sunday as 0; the week here starts on Monday.
		offset := (int(now.Weekday()) + 6) % 7
		start = dayStart.AddDate(0, 0, -offset)
	case "month":
		start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	}

	return Window{Start: start, End: dayEnd}
}

// StartISO returns the start bound in the store's timestamp layout.
func (w Window) StartISO() string {
	return w.Start.Format(models.TimeLayout)
}

// EndISO returns the end bound in the store's timestamp layout.
func (w Window) EndISO() string {
	return w.End.Format(models.TimeLayout)
}
