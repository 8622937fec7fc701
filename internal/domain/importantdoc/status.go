package importantdoc

import "time"

type Status string

const (
	StatusValid    Status = "valid"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
	StatusUndated  Status = "undated"
)

// StatusAt classifies an expiry date on the calendar day of now. Expiry dates
// are stored as UTC midnight, so the expiry day is read in UTC whatever zone
// the driver hands the value back in. A document expiring today is still
// expiring, not expired.
func StatusAt(expiresAt *time.Time, now time.Time, window time.Duration) Status {
	if expiresAt == nil {
		return StatusUndated
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = expiresAt.UTC().Date()
	expiry := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	switch {
	case expiry.Before(today):
		return StatusExpired
	case !expiry.After(today.AddDate(0, 0, int(window/(24*time.Hour)))):
		return StatusExpiring
	default:
		return StatusValid
	}
}

// CalendarDate keeps the day of t as written in its own zone and returns it as
// UTC midnight, the form dates are stored in.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
