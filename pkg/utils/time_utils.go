package utils

import "time"

// Epoch values are stored as **seconds** everywhere in the DB.
func NowUnixSeconds() int64 { return time.Now().Unix() }

// FromUnixSeconds converts a stored epoch value back to UTC time.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

// DaysUntil reports the number of whole or partial days between now and
// deadline, rounded up. Deadlines at or before now count as 0.
func DaysUntil(now, deadline time.Time) int {
	if !deadline.After(now) {
		return 0
	}
	d := deadline.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
