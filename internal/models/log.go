package models

import "time"

// Severity of an event log line
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarn    Severity = "WARN"
	SeverityError   Severity = "ERROR"
	SeveritySuccess Severity = "SUCCESS"
)

// LogEntry is one human-readable line of the dashboard event log
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Severity  Severity  `json:"type"`
	Message   string    `json:"message"`
}

// Consent records the analytics consent choice
type Consent string

const (
	ConsentUnset    Consent = ""
	ConsentAccepted Consent = "accepted"
	ConsentDeclined Consent = "declined"
)

// Valid reports whether c is one of the choices a user can make
func (c Consent) Valid() bool {
	return c == ConsentAccepted || c == ConsentDeclined
}
