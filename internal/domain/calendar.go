package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// DefaultUTCOffsetHours is the fixed local offset (Asia/Bangkok, no DST)
const DefaultUTCOffsetHours = 7

// Zone returns a fixed-offset location for the given number of hours east of UTC
func Zone(offsetHours int) *time.Location {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	return time.FixedZone(name, offsetHours*60*60)
}

// DateOf formats t as YYYY-MM-DD in its own location
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekRange returns Monday..Sunday of the week containing t
func WeekRange(t time.Time) (time.Time, time.Time) {
	day := StartOfDay(t)
	// Go's Sunday is 0; shift so Monday is the first day
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthRange returns the first and last calendar day of the month containing t
func MonthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, -1)
}

// IsWeekend reports whether t falls on Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ParseDate parses a YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, ErrInvalidDate
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// NormalizeClock accepts H:MM, HH:MM, H.MM or HH.MM and returns HH:MM
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":.")
	if sep <= 0 || sep > 2 || len(s)-sep-1 != 2 {
		return "", ErrInvalidTime
	}

	hour, err := strconv.Atoi(s[:sep])
	if err != nil || hour < 0 || hour > 23 {
		return "", ErrInvalidTime
	}
	minute, err := strconv.Atoi(s[sep+1:])
	if err != nil || minute < 0 || minute > 59 {
		return "", ErrInvalidTime
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ValidClock reports whether s is a strict HH:MM time of day
func ValidClock(s string) bool {
	if len(s) != len(ClockLayout) {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// MinuteOfDay parses HH:MM into minutes since midnight
func MinuteOfDay(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, ErrInvalidTime
	}
	return t.Hour()*60 + t.Minute(), nil
}
