package presenter

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidWeekday = errors.New("weekday out of range")

// Weekday numbers days Monday=0 through Sunday=6.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// WeekdayOf converts Go's Sunday-first numbering.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Short returns the three-letter abbreviation, e.g. "Mon".
func (d Weekday) Short() string {
	return d.String()[:3]
}

// WeekdayName maps 0-6 (Monday=0) to the English day name.
func WeekdayName(n int) (string, error) {
	d := Weekday(n)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidWeekday, n)
	}
	return d.String(), nil
}
