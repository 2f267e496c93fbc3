package domain

import "time"

// ValidateDates accepts a booking period when both ends are set and start is strictly before end.
// A start in the past is accepted.
func ValidateDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return InvalidInput("start and end are required")
	}
	if !start.Before(end) {
		return InvalidInput("start %s must be before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}
