// Package domain contains core concepts of the chat relay.
// This file defines ChatEvent and the rules attached to each event type.
// ChatEvents are immutable once dispatched.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventChat       EventType = "CHAT"
	EventJoin       EventType = "JOIN"
	EventLeave      EventType = "LEAVE"
	EventTyping     EventType = "TYPING"
	EventStopTyping EventType = "STOP_TYPING"
)

// Persistable reports whether events of this type belong in the history.
// Typing signals are ephemeral and high frequency.
func (t EventType) Persistable() bool {
	switch t {
	case EventChat, EventJoin, EventLeave:
		return true
	default:
		return false
	}
}

// ChatEvent is what every subscriber of a topic receives.
// ID, Topic and Timestamp are always assigned by the dispatcher.
type ChatEvent struct {
	ID        uuid.UUID `json:"id"`
	Topic     TopicName `json:"topic"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Receiver  *string   `json:"receiver,omitempty"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

func JoinAnnouncement(sender string) string {
	return fmt.Sprintf("%s has joined", sender)
}

func LeaveAnnouncement(sender string) string {
	return fmt.Sprintf("%s has left", sender)
}
