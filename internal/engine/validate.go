package engine

import (
	"strconv"
	"strings"

	"github.com/z0m0dan/taskr/internal/timeutil"
)

// validateInput checks a new task's title and due-time string. The format
// check is the `^[0-9]+[hm]$` contract; range checks reject hour counts
// above the configured cap and minute counts off the configured step.
func (s *Service) validateInput(title, interval string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(interval) == "" {
		return ValidationError{Reason: "some of the fields are empty"}
	}
	if !timeutil.ValidInterval(interval) {
		return ValidationError{Reason: "invalid due time, expected e.g. 1h or 5m"}
	}

	n, err := strconv.Atoi(interval[:len(interval)-1])
	if err != nil || n < 1 {
		return ValidationError{Reason: "due time must be a positive count"}
	}
	switch interval[len(interval)-1] {
	case 'h':
		if n > s.maxHours {
			return ValidationError{Reason: "invalid hour value, at most " + strconv.Itoa(s.maxHours) + "h"}
		}
	case 'm':
		if s.minuteStep > 1 && n%s.minuteStep != 0 {
			return ValidationError{Reason: "invalid minute value, minutes come in steps of " + strconv.Itoa(s.minuteStep)}
		}
	}
	return nil
}
