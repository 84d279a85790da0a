package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date string cannot be converted.
var ErrInvalidDate = errors.New("invalid date")

// ErrInvalidClock is returned when a time-of-day string cannot be converted.
var ErrInvalidClock = errors.New("invalid time")

// Food is a single timestamped entry.
type Food struct {
	ID   int64
	Name string
	Date Date
	Time Clock
}

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Today returns the calendar date of now.
func Today(now time.Time) Date {
	return DateOf(now)
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate validates and builds a Date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if year < 1 || year > 9999 {
		return Date{}, fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31/02 becomes 03/03), so compare back.
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("%w: %02d/%02d/%d does not exist", ErrInvalidDate, day, int(month), year)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// ParseDate converts "D", "D/M" or "D/M/Y" into a Date.
// Missing month and year are taken from now.
func ParseDate(s string, now time.Time) (Date, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	year, month, _ := now.Date()
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	if len(nums) > 1 {
		month = time.Month(nums[1])
	}
	if len(nums) > 2 {
		year = nums[2]
	}
	return NewDate(year, month, nums[0])
}

// ParseISODate parses the storage form YYYY-MM-DD.
func ParseISODate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// String returns the storage form YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Display returns the form shown in result tables, DD/MM/Y.
func (d Date) Display() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%d", d.Day, int(d.Month), d.Year)
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// NewClock validates and builds a Clock.
func NewClock(hour, minute int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("%w: %d:%02d", ErrInvalidClock, hour, minute)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// ClockOf returns the time of day of t, truncated to the minute.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// ParseClock converts "H" or "H:M" into a Clock.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 2 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute := 0
	if len(parts) == 2 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil {
			return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
		}
	}
	return NewClock(hour, minute)
}

// String returns HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ClockRange is an inclusive range of times of day.
type ClockRange struct {
	Low  Clock
	High Clock
}

// HourRange returns the range covering every minute of hour.
func HourRange(hour int) (ClockRange, error) {
	low, err := NewClock(hour, 0)
	if err != nil {
		return ClockRange{}, err
	}
	return ClockRange{Low: low, High: Clock{Hour: hour, Minute: 59}}, nil
}

func (r ClockRange) String() string {
	return r.Low.String() + ".." + r.High.String()
}
