package store

import "time"

// Keys used by the application. Values under them are JSON documents in the
// same shape as the web tracker's local storage, so backups move both ways.
const (
	KeyIntervals      = "time-tracker-intervals"
	KeyLegacyState    = "time-tracker-state"
	KeyGoal           = "timeGoal"
	KeyStorageConsent = "storage-consent-accepted"
	KeyLanguage       = "language"
)

// Entry is one key-value row.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
