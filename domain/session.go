// Package domain contains core concepts of the chat relay.
// This file defines Session identities and the roles a participant can hold.
// No runtime, network, or transport logic should be added here.
package domain

import (
	"strings"

	"github.com/google/uuid"
)

type SessionID string

// ConnectionHandle addresses a transport connection without owning it.
// The transport layer owns the connection; a Session only keeps the handle.
type ConnectionHandle string

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSupport  Role = "SUPPORT"
)

func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// NewConnectionHandle prefixes the handle with the transport name (ws, poll...)
// so logs tell which transport a session came from.
func NewConnectionHandle(transport string) ConnectionHandle {
	return ConnectionHandle(transport + "-" + uuid.NewString())
}

// ParseRole is lenient: an empty value falls back to CUSTOMER, anything
// unknown is rejected.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case "", RoleCustomer:
		return RoleCustomer, true
	case RoleSupport:
		return RoleSupport, true
	default:
		return "", false
	}
}

// Session is the server-side record of one connected client.
// Username uniqueness is not enforced: two sessions may share a name.
type Session struct {
	ID       SessionID
	Username string
	Handle   ConnectionHandle
	Role     Role
	Online   bool
}

// SessionView is the public projection of a Session sent to clients.
type SessionView struct {
	ID       SessionID `json:"id"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	Topics   []string  `json:"topics"`
}

func (s Session) View(topics []TopicName) SessionView {
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		names = append(names, string(t))
	}
	return SessionView{ID: s.ID, Username: s.Username, Role: s.Role, Topics: names}
}
