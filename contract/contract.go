//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives every event published on a topic, after subscribers.
// Used for journals (history, archive), never for client delivery.
type EventSink interface {
	Consume(ctx context.Context, e domain.ChatEvent) error
}

// Peer is the outbound side of one transport connection.
// Deliver must never block: a full buffer is reported as an error.
type Peer interface {
	Deliver(ctx context.Context, frame domain.Outbound) error
	Close()
}

type ISessionRegistry interface {
	Register(handle domain.ConnectionHandle, username string, role domain.Role) domain.SessionID
	Deregister(id domain.SessionID)
	Lookup(id domain.SessionID) (domain.Session, bool)
	SetUsername(id domain.SessionID, username string) bool
	Count() int
	Sessions() []domain.Session
}

type IConnections interface {
	Attach(handle domain.ConnectionHandle, peer Peer)
	Detach(handle domain.ConnectionHandle)
	Send(ctx context.Context, handle domain.ConnectionHandle, frame domain.Outbound) error
	Close(handle domain.ConnectionHandle)
	CloseAll()
	Count() int
}

type ITopicRouter interface {
	Attach(sinks ...EventSink)
	Declared(topic domain.TopicName) bool
	Subscribe(topic domain.TopicName, id domain.SessionID)
	SubscribeAfter(topic domain.TopicName, id domain.SessionID, handoff func() error) error
	Unsubscribe(topic domain.TopicName, id domain.SessionID)
	UnsubscribeAll(id domain.SessionID) []domain.TopicName
	Publish(ctx context.Context, topic domain.TopicName, evt domain.ChatEvent) int
	Subscribers(topic domain.TopicName) []domain.SessionID
	TopicsOf(id domain.SessionID) []domain.TopicName
	Topics() []domain.TopicName
}

type IHistory interface {
	Append(evt domain.ChatEvent)
	Snapshot() []domain.ChatEvent
	SnapshotOf(topic domain.TopicName) []domain.ChatEvent
	Len() int
}

type IDispatcher interface {
	Handle(ctx context.Context, id domain.SessionID, in domain.Inbound) (domain.Outcome, error)
	Leave(ctx context.Context, username string, topics []domain.TopicName) int
}

type IEventRepository interface {
	StoreEvent(evt domain.ChatEvent) error
	GetEvents(topic domain.TopicName, limit int) ([]domain.ChatEvent, error)
}
