// Package gateway bridges client transports (WebSocket, long polling) to the
// relay runtime: handshake, inbound frames, outbound deliveries and cleanup.
package gateway

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// maxDecodeErrorsPerConn is how many malformed frames a connection may send
// before it is dropped.
const maxDecodeErrorsPerConn = 3

// Link is the gateway side of one accepted connection.
type Link struct {
	Handle    domain.ConnectionHandle
	SessionID domain.SessionID

	mu           sync.Mutex
	username     string
	topics       []domain.TopicName
	left         bool
	decodeErrors int
	closeOnce    sync.Once
}

func (l *Link) Username() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.username
}

// protocolError counts a malformed frame and reports whether the budget is spent.
func (l *Link) protocolError() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decodeErrors++
	return l.decodeErrors >= maxDecodeErrorsPerConn
}

type Gateway struct {
	log         *slog.Logger
	registry    contract.ISessionRegistry
	connections contract.IConnections
	router      contract.ITopicRouter
	history     contract.IHistory
	dispatcher  contract.IDispatcher
	topicsFor   func(domain.Role) []domain.TopicName
}

func NewGateway(log *slog.Logger, registry contract.ISessionRegistry, connections contract.IConnections,
	router contract.ITopicRouter, history contract.IHistory, dispatcher contract.IDispatcher,
	topicsFor func(domain.Role) []domain.TopicName) *Gateway {
	return &Gateway{
		log:         log,
		registry:    registry,
		connections: connections,
		router:      router,
		history:     history,
		dispatcher:  dispatcher,
		topicsFor:   topicsFor,
	}
}

// Accept turns a validated handshake into a live session. The peer first
// receives the connected frame (session view and history of its main topic),
// then the session is subscribed to the topics of its role. The snapshot and
// the subscription to the main topic happen under its lock, so every event is
// either in the snapshot or delivered afterwards.
func (g *Gateway) Accept(ctx context.Context, handle domain.ConnectionHandle, peer contract.Peer,
	hs domain.Handshake, role domain.Role) (*Link, error) {
	topics := g.topicsFor(role)
	if len(topics) == 0 {
		topics = []domain.TopicName{domain.DefaultTopic}
	}

	id := g.registry.Register(handle, hs.Username, role)
	g.connections.Attach(handle, peer)

	session, _ := g.registry.Lookup(id)
	err := g.router.SubscribeAfter(topics[0], id, func() error {
		return peer.Deliver(ctx, domain.Connected(session.View(topics), g.history.SnapshotOf(topics[0])))
	})
	if err != nil {
		g.registry.Deregister(id)
		g.connections.Detach(handle)
		return nil, fmt.Errorf("sending connected frame: %w", err)
	}

	for _, topic := range topics[1:] {
		g.router.Subscribe(topic, id)
	}
	g.log.Info("Session accepted", "session_id", id, "handle", handle, "role", role, "username", hs.Username)

	return &Link{Handle: handle, SessionID: id, username: hs.Username, topics: topics}, nil
}

// Inbound decodes one raw frame and hands it to the dispatcher. Protocol
// errors are reported to the client with an error frame; the connection
// should be dropped when the returned error wraps ErrUnknownSession or when
// the outcome says the session left.
func (g *Gateway) Inbound(ctx context.Context, link *Link, raw []byte) (domain.Outcome, error) {
	in, err := domain.DecodeInbound(raw)
	if err == nil && in.Subject == domain.SubjectConnect {
		err = fmt.Errorf("%w: already connected", errors.ErrInvalidPayload)
	}
	if err != nil {
		g.reject(ctx, link, err)
		return domain.Outcome{}, err
	}

	outcome, err := g.dispatcher.Handle(ctx, link.SessionID, in)
	if err != nil {
		if !errors.Is(err, errors.ErrUnknownSession) {
			g.reject(ctx, link, err)
		}
		return outcome, err
	}

	if outcome.Event.Type == domain.EventJoin {
		link.mu.Lock()
		link.username = outcome.Event.Sender
		link.mu.Unlock()
	}
	if outcome.Left {
		link.mu.Lock()
		link.left = true
		link.mu.Unlock()
	}
	if outcome.Reply != nil {
		if err := g.connections.Send(ctx, link.Handle, *outcome.Reply); err != nil {
			g.log.Warn("Reply not delivered", "handle", link.Handle, "error", err)
		}
	}
	return outcome, nil
}

// ExceedsDecodeBudget reports whether err is a client mistake that used up
// the connection's allowance of malformed frames.
func (g *Gateway) ExceedsDecodeBudget(link *Link, err error) bool {
	if !errors.Is(err, errors.ErrInvalidPayload) && !errors.Is(err, errors.ErrUnknownSubject) {
		return false
	}
	return link.protocolError()
}

func (g *Gateway) reject(ctx context.Context, link *Link, err error) {
	g.log.Warn("Protocol violation", "handle", link.Handle, "session_id", link.SessionID, "error", err)
	if sendErr := g.connections.Send(ctx, link.Handle, domain.Failure(err)); sendErr != nil {
		g.log.Debug("Error frame not delivered", "handle", link.Handle, "error", sendErr)
	}
}

// Disconnect runs once per link when its transport ends, whatever the cause.
// The session is removed from every topic and from the registry before the
// LEAVE announcement goes out, so nothing is delivered to the dead connection.
func (g *Gateway) Disconnect(ctx context.Context, link *Link) {
	link.closeOnce.Do(func() {
		topics := lo.Uniq(append(append([]domain.TopicName{}, link.topics...), g.router.UnsubscribeAll(link.SessionID)...))
		g.registry.Deregister(link.SessionID)
		g.connections.Detach(link.Handle)

		link.mu.Lock()
		username, left := link.username, link.left
		link.mu.Unlock()

		g.log.Info("Session disconnected", "session_id", link.SessionID, "handle", link.Handle, "username", username)
		if left {
			return
		}
		g.dispatcher.Leave(ctx, username, topics)
	})
}
