package models

import "github.com/redpulse/client-go/enums"

// SessionUser is the minimal identity carried inside a session record.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session holds the bearer credentials for an authenticated principal.
type Session struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         SessionUser `json:"user"`
}

// SessionContext pairs a session with its derived kind. It is threaded
// explicitly through calls instead of a process-wide demo-mode flag.
type SessionContext struct {
	Kind    enums.SessionKind `json:"kind"`
	Session Session           `json:"session"`
}

func (s SessionContext) IsDemo() bool {
	return s.Kind == enums.SessionDemo
}
