package domain

import "time"

// Credential is the persisted half of a session: an opaque bearer token and the
// role it was issued for. Both fields are set or the record does not exist.
type Credential struct {
	Token string
	Role  Role
}

// Complete reports whether both halves of the record are present.
func (c Credential) Complete() bool {
	return c.Token != "" && c.Role != RoleNone
}

// SessionState is what views may observe about a session. The token itself is
// only ever read by the backend transport.
type SessionState struct {
	Authenticated bool `json:"isAuthenticated"`
	Role          Role `json:"role,omitempty"`
}

// ChangeReason names the transition that produced a SessionChange.
type ChangeReason string

const (
	ReasonRehydrated ChangeReason = "rehydrated"
	ReasonLoggedIn   ChangeReason = "logged_in"
	ReasonLoggedOut  ChangeReason = "logged_out"
	ReasonExpired    ChangeReason = "expired"
)

// SessionChange carries whole before/after snapshots of a transition.
type SessionChange struct {
	Previous SessionState
	Current  SessionState
	Reason   ChangeReason
}

// SessionEvent is a SessionChange tagged with the browser context it belongs to.
type SessionEvent struct {
	ContextID string
	Reason    ChangeReason
	Role      Role
	At        time.Time
}
