package model

import (
	"time"
	_ "time/tzdata"
)

const (
	FirstWeek = 1
	LastWeek  = 18
)

// Eastern is the time zone the NFL schedule, the weekly panel and the weekly resolution run in.
var Eastern = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// WeekOneSunday returns the first Sunday on or after September 1st of the season year.
func WeekOneSunday(season int) time.Time {
	d := time.Date(season, time.September, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// WeekSunday returns the date of the Sunday of the given week as midnight UTC.
func WeekSunday(season, week int) time.Time {
	return WeekOneSunday(season).AddDate(0, 0, 7*(week-1))
}

// CurrentWeek returns the week of the season that now falls in, using the calendar date in the
// Eastern time zone. Anything before week one is week one, and the result is clamped to [1,18].
func CurrentWeek(season int, now time.Time) int {
	return weekOfDate(season, dateOf(now))
}

// PanelWeek returns the week the weekly panel should be advertising at time now. That is the week
// of the next Sunday, or today if today is a Sunday.
func PanelWeek(season int, now time.Time) int {
	today := dateOf(now)
	untilSunday := (7 - int(today.Weekday())) % 7
	return weekOfDate(season, today.AddDate(0, 0, untilSunday))
}

func weekOfDate(season int, today time.Time) int {
	w1 := WeekOneSunday(season)
	if !today.After(w1) {
		return FirstWeek
	}

	days := int(today.Sub(w1).Hours() / 24)
	return clampWeek(days/7 + 1)
}

func ValidWeek(week int) bool {
	return week >= FirstWeek && week <= LastWeek
}

// dateOf strips the time from t after converting it to Eastern, returning midnight UTC of that date
// so that day arithmetic isn't affected by daylight saving changes.
func dateOf(t time.Time) time.Time {
	y, m, d := t.In(Eastern).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clampWeek(w int) int {
	return max(FirstWeek, min(LastWeek, w))
}
