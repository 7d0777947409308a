// Package domain contains core concepts of the chat relay.
// This file defines the frames exchanged with clients and their validation.
package domain

import (
	"chat-relay/errors"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Subject string

const (
	SubjectConnect     Subject = "connect"
	SubjectSendMessage Subject = "chat.sendMessage"
	SubjectAddUser     Subject = "chat.addUser"
	SubjectTyping      Subject = "chat.typing"
	SubjectStopTyping  Subject = "chat.stopTyping"
	SubjectLeave       Subject = "chat.leave"
	SubjectHistory     Subject = "chat.history"

	// applicationPrefix is accepted in front of any subject ("/app/chat.sendMessage").
	applicationPrefix = "/app/"
)

// Outbound subjects that are not topic destinations.
const (
	OutboundConnected = "connected"
	OutboundHistory   = "history"
	OutboundError     = "error"
)

// Inbound is a frame received from a client.
// The payload is decoded lazily according to the subject.
type Inbound struct {
	Subject Subject         `json:"subject"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Handshake is the payload of the first frame a client sends.
type Handshake struct {
	Role     string `json:"role" validate:"omitempty,max=16"`
	Username string `json:"username" validate:"max=64"`
}

// EventPayload is the client view of a ChatEvent. The timestamp is accepted
// in any shape and never trusted.
type EventPayload struct {
	Content   string          `json:"content"`
	Sender    string          `json:"sender" validate:"max=64"`
	Receiver  *string         `json:"receiver,omitempty" validate:"omitempty,max=64"`
	Type      EventType       `json:"type" validate:"omitempty,oneof=CHAT JOIN LEAVE TYPING STOP_TYPING"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
}

// Outbound is a frame sent to a client: a topic broadcast or a direct reply.
type Outbound struct {
	Subject string       `json:"subject"`
	Event   *ChatEvent   `json:"event,omitempty"`
	Session *SessionView `json:"session,omitempty"`
	History []ChatEvent  `json:"history,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func DecodeInbound(raw []byte) (Inbound, error) {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	in.Subject = Subject(strings.TrimPrefix(strings.TrimSpace(string(in.Subject)), applicationPrefix))
	if in.Subject == "" {
		return Inbound{}, fmt.Errorf("%w: missing subject", errors.ErrInvalidPayload)
	}
	return in, nil
}

// DecodeHandshake reads a connect frame. Anything else is a handshake failure.
func DecodeHandshake(raw []byte) (Handshake, Role, error) {
	in, err := DecodeInbound(raw)
	if err != nil {
		return Handshake{}, "", fmt.Errorf("%w: %v", errors.ErrInvalidHandshake, err)
	}
	if in.Subject != SubjectConnect {
		return Handshake{}, "", fmt.Errorf("%w: expected %q, got %q", errors.ErrInvalidHandshake, SubjectConnect, in.Subject)
	}
	var hs Handshake
	if len(in.Payload) > 0 {
		if err := json.Unmarshal(in.Payload, &hs); err != nil {
			return Handshake{}, "", fmt.Errorf("%w: %v", errors.ErrInvalidHandshake, err)
		}
	}
	return ValidateHandshake(hs)
}

func ValidateHandshake(hs Handshake) (Handshake, Role, error) {
	if err := validate.Struct(hs); err != nil {
		return Handshake{}, "", fmt.Errorf("%w: %v", errors.ErrInvalidHandshake, err)
	}
	role, ok := ParseRole(hs.Role)
	if !ok {
		return Handshake{}, "", fmt.Errorf("%w: unknown role %q", errors.ErrInvalidHandshake, hs.Role)
	}
	hs.Username = strings.TrimSpace(hs.Username)
	return hs, role, nil
}

// Event decodes and validates the ChatEvent carried by a chat.* frame.
func (in Inbound) Event() (EventPayload, error) {
	var payload EventPayload
	if len(in.Payload) > 0 {
		if err := json.Unmarshal(in.Payload, &payload); err != nil {
			return EventPayload{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
		}
	}
	if err := validate.Struct(payload); err != nil {
		return EventPayload{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	payload.Sender = strings.TrimSpace(payload.Sender)
	return payload, nil
}

// TopicName resolves the frame target, DefaultTopic when absent.
func (in Inbound) TopicName() (TopicName, error) {
	topic, ok := ParseTopic(in.Topic)
	if !ok {
		return "", fmt.Errorf("%w: invalid topic %q", errors.ErrInvalidPayload, in.Topic)
	}
	return topic, nil
}

func Broadcast(evt ChatEvent) Outbound {
	return Outbound{Subject: evt.Topic.Destination(), Event: &evt}
}

func Connected(view SessionView, history []ChatEvent) Outbound {
	return Outbound{Subject: OutboundConnected, Session: &view, History: history}
}

func HistoryReply(history []ChatEvent) Outbound {
	return Outbound{Subject: OutboundHistory, History: history}
}

func Failure(err error) Outbound {
	return Outbound{Subject: OutboundError, Error: err.Error()}
}
