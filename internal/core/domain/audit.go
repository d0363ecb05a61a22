package domain

import "time"

// AuthEventType classifies entries in the security audit trail.
type AuthEventType string

const (
	EventUserRegistered    AuthEventType = "user_registered"
	EventLoginSucceeded    AuthEventType = "login_succeeded"
	EventLoginFailed       AuthEventType = "login_failed"
	EventTokenRejected     AuthEventType = "token_rejected"
	EventIdentityViolation AuthEventType = "identity_violation"
)

// AuthEvent records a single security-relevant occurrence. Events are
// persisted asynchronously; losing one on crash is acceptable, blocking a
// request on the audit write is not.
type AuthEvent struct {
	ID        string        `json:"id"`
	Type      AuthEventType `json:"type"`
	Username  string        `json:"username"`
	Detail    string        `json:"detail,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
