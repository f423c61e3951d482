package formatting

import "time"

// AgeAt returns the whole-year age of someone born on dob as of the given date.
// Returns 0 for a zero dob or a date before dob.
func AgeAt(dob, date time.Time) int {
	if dob.IsZero() || date.Before(dob) {
		return 0
	}

	age := date.Year() - dob.Year()
	anniversary := time.Date(date.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)
	if time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).Before(anniversary) {
		age--
	}
	return age
}
