package enums

// SessionKind classifies where an active session came from. It is derived
// from which store slot held the record and is never persisted itself.
type SessionKind string

const (
	SessionReal SessionKind = "real"
	SessionDemo SessionKind = "demo"
)
