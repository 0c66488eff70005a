package application

import "time"

// MonthWindow is the half-open range [Start, Next) covering one calendar
// month, plus its YYYY-MM tag.
type MonthWindow struct {
	Tag   string
	Start time.Time
	Next  time.Time
}

// MonthWindowFromTag builds the window for a "YYYY-MM" tag. An empty or
// malformed tag falls back to the current month, matching how the dashboard
// treats a missing month parameter.
func MonthWindowFromTag(tag string) MonthWindow {
	start, err := time.Parse("2006-01", tag)
	if err != nil {
		now := time.Now().UTC()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return monthWindowAt(start.Year(), start.Month())
}

func monthWindowAt(year int, month time.Month) MonthWindow {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return MonthWindow{
		Tag:   start.Format("2006-01"),
		Start: start,
		Next:  start.AddDate(0, 1, 0),
	}
}

// Days returns the number of calendar days in the month.
func (w MonthWindow) Days() int {
	return int(w.Next.Sub(w.Start).Hours() / 24)
}
