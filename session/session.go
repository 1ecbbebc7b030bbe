// Package session holds the gateway's single authenticated identity: the
// bearer token and identity claims returned by the upstream at login, kept
// in memory and mirrored to a durable record so the session survives
// restarts. The store is the only source of truth for "who is logged in".
package session

import "errors"

// Roles reported by the upstream in the login response.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// RecordName is the fixed name of the durable storage record that holds the
// serialized session. Absence of this record means Anonymous.
const RecordName = "userInfo"

// ErrInvalidPayload is returned by Store.Login when a login payload is
// missing a required field. The store is left unchanged.
var ErrInvalidPayload = errors.New("session: invalid session payload")

// Session is the client-held record of the authenticated identity. It is
// either fully populated (every field non-empty) or not held at all — the
// store never keeps a partial session.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Validate reports whether the session is fully populated.
func (s Session) Validate() error {
	if s.Token == "" || s.UserID == "" || s.Username == "" || s.Role == "" {
		return ErrInvalidPayload
	}
	return nil
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
