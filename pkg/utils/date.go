package utils

import (
	"log"
	"time"
)

func GetJSTLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return loc
}

func TimeNowJST() time.Time {
	return time.Now().In(GetJSTLocation())
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EndOfMonth clamps a (year, month) pair to its final calendar day.
// Month arithmetic is done on a month index so that e.g. subtracting
// 3 months from May 31 lands on Feb 28/29, never on an overflow date.
func EndOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, LastDayOfMonth(year, month), 0, 0, 0, 0, time.UTC)
}

// AddMonthsClamped shifts a (year, month) pair by delta months and returns
// the end of the resulting month.
func AddMonthsClamped(year int, month time.Month, delta int) time.Time {
	total := year*12 + int(month) - 1 + delta
	y := total / 12
	m := time.Month(total%12 + 1)
	return EndOfMonth(y, m)
}

// DateOnly truncates a time to midnight UTC, used for date-typed columns.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
