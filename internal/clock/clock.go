// Package clock keeps in-world time.
package clock

import "fmt"

const (
	minutesPerHour = 60
	hoursPerDay    = 24
	minutesPerDay  = minutesPerHour * hoursPerDay
)

// Time is a day/hour/minute clock that only moves forward.
type Time struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Start is the time a new session begins at.
func Start() Time {
	return Time{Day: 1, Hour: 3, Minute: 30}
}

// Advance moves the clock forward. Negative input is ignored. An hour past
// 23 rolls into the next day keeping the remainder, so 23:00 plus two hours
// is 01:00 the next day rather than midnight.
func (t *Time) Advance(minutes int) {
	if minutes <= 0 {
		return
	}
	days := minutes / minutesPerDay
	rest := minutes % minutesPerDay
	hours := rest / minutesPerHour
	mins := rest % minutesPerHour

	t.Day += days
	t.Hour += hours
	t.Minute += mins

	if t.Minute >= minutesPerHour {
		t.Minute -= minutesPerHour
		t.Hour++
	}
	if t.Hour >= hoursPerDay {
		t.Hour -= hoursPerDay
		t.Day++
	}
}

func (t Time) String() string {
	return fmt.Sprintf("Day %d, %02d:%02d", t.Day, t.Hour, t.Minute)
}
