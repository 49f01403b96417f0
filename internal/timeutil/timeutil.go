// Package timeutil holds the relative-time helpers shared by the engine and
// the presentation layer: interval parsing ("30m", "2h"), human countdown
// strings and the per-day storage keys.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var intervalRe = regexp.MustCompile(`^[0-9]+[hm]$`)

// ValidInterval reports whether s matches the accepted relative-time format.
func ValidInterval(s string) bool {
	return intervalRe.MatchString(s)
}

// ParseInterval converts a relative-time string into a duration.
// Accepted format: one or more digits followed by "h" or "m".
func ParseInterval(s string) (time.Duration, error) {
	if !intervalRe.MatchString(s) {
		return 0, fmt.Errorf("invalid time interval %q", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid time interval %q", s)
	}
	switch s[len(s)-1] {
	case 'h':
		return time.Duration(n) * time.Hour, nil
	default:
		return time.Duration(n) * time.Minute, nil
	}
}

// Readable expands an interval string into words: "30m" -> "30 minutes".
// Returns the input unchanged when it does not match the interval format.
func Readable(s string) string {
	if !intervalRe.MatchString(s) {
		return s
	}
	n, _ := strconv.Atoi(s[:len(s)-1])
	unit := "minute"
	if s[len(s)-1] == 'h' {
		unit = "hour"
	}
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Countdown renders the distance between target and reference as a signed
// phrase: "1 hour 5 minutes left", "3 minutes ago". The remainder is rounded
// up to whole minutes; under a minute in the past it degrades to
// "few seconds ago".
func Countdown(target, reference time.Time) string {
	delta := target.Sub(reference)
	suffix := "left"
	if delta <= 0 {
		if delta > -time.Minute {
			return "few seconds ago"
		}
		suffix = "ago"
		delta = -delta
	}

	minutes := int((delta + time.Minute - 1) / time.Minute)
	hours := minutes / 60
	minutes %= 60

	out := ""
	if hours == 1 {
		out = "1 hour"
	} else if hours > 1 {
		out = fmt.Sprintf("%d hours", hours)
	}
	if minutes > 0 {
		if out != "" {
			out += " "
		}
		if minutes == 1 {
			out += "1 minute"
		} else {
			out += fmt.Sprintf("%d minutes", minutes)
		}
	}
	return out + " " + suffix
}

// DayKey returns the persistence partition key for the given date.
// The exact "D/M/YYYY" shape is load-bearing: yesterday/today lookups must
// match keys written on earlier days.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
