// Package slot maps requested durations onto the workshop's discrete
// hourly grid and anchors calendar views. All functions are pure.
package slot

import (
	"fmt"
	"math"
	"time"
)

// Working hours are the closed range [8, 17]; ten bookable slots per day.
const (
	DayStartHour = 8
	DayEndHour   = 17
)

// Hours returns the fixed hour labels of one working day, "8:00" through
// "17:00".
func Hours() []string {
	labels := make([]string, 0, DayEndHour-DayStartHour+1)
	for h := DayStartHour; h <= DayEndHour; h++ {
		labels = append(labels, Label(h))
	}
	return labels
}

// Label formats an hour as its slot label ("9:00", not "09:00").
func Label(hour int) string {
	return fmt.Sprintf("%d:00", hour)
}

// Expand returns the consecutive hour labels a booking occupies, starting
// at startHour. Half-hour durations round up to a full slot. Hours outside
// the working range are silently clipped, never an error: a 2-hour request
// starting at 16:00 yields only the 16:00 slot.
func Expand(startHour int, durationHours float64) []string {
	if durationHours <= 0 {
		return nil
	}
	n := int(math.Ceil(durationHours * 60 / 60))
	labels := make([]string, 0, n)
	for i := 0; i < n; i++ {
		h := startHour + i
		if h < DayStartHour || h > DayEndHour {
			continue
		}
		labels = append(labels, Label(h))
	}
	return labels
}

// WeekdayIndex converts a date to the Monday=0..Sunday=6 convention used
// by assignment rows, independent of locale.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns midnight of the Monday on or before t, in t's
// location.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.AddDate(0, 0, -WeekdayIndex(t)).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthGrid returns the 6x7 matrix of dates backing a month view. The grid
// starts on the Monday on or before the 1st and always spans 42 cells, so
// months whose last week needs a sixth row are never clipped.
func MonthGrid(year int, month time.Month) [6][7]time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	cell := WeekStart(first)

	var grid [6][7]time.Time
	for row := 0; row < 6; row++ {
		for col := 0; col < 7; col++ {
			grid[row][col] = cell
			cell = cell.AddDate(0, 0, 1)
		}
	}
	return grid
}
