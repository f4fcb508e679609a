package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "01/02/2006 15:04"
)

// ParseDueTime interprets an optional leading time-specification field:
//
//	t=HH:MM            next occurrence of that wall-clock time
//	d=MM/DD/YYYY HH:MM absolute timestamp
//	m=N                N whole minutes from now, plus a one second margin
//
// now must already carry the bot's timezone. The second return value reports
// whether the field was a time token at all; a malformed token is an error,
// which is distinct from no token being present.
func ParseDueTime(field string, now time.Time) (time.Time, bool, error) {
	switch {
	case strings.HasPrefix(field, "t="):
		clock, err := time.Parse(clockLayout, field[2:])
		if err != nil {
			return time.Time{}, true, fmt.Errorf("%w: %q", ErrMalformedDueTime, field)
		}

		due := time.Date(now.Year(), now.Month(), now.Day(),
			clock.Hour(), clock.Minute(), 0, 0, now.Location())
		if !due.After(now) {
			due = due.AddDate(0, 0, 1)
		}

		return due, true, nil
	case strings.HasPrefix(field, "d="):
		due, err := time.ParseInLocation(dateLayout, field[2:], now.Location())
		if err != nil {
			return time.Time{}, true, fmt.Errorf("%w: %q", ErrMalformedDueTime, field)
		}

		return due, true, nil
	case strings.HasPrefix(field, "m="):
		minutes, err := strconv.Atoi(field[2:])
		if err != nil {
			return time.Time{}, true, fmt.Errorf("%w: %q", ErrMalformedDueTime, field)
		}

		due := now.Truncate(time.Second).Add(time.Duration(minutes)*time.Minute + time.Second)

		return due, true, nil
	default:
		return time.Time{}, false, nil
	}
}

// MinutesUntil is the number of whole minutes between now and due. Ryver
// reminders are created with minute granularity, and a poll closing less than
// a whole minute out is treated as already in the past.
func MinutesUntil(due, now time.Time) int {
	return int(due.Sub(now).Minutes())
}
