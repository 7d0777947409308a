package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var _ contract.IDispatcher = (*Dispatcher)(nil)

type handler func(ctx context.Context, session domain.Session, in domain.Inbound) (domain.Outcome, error)

// censor is satisfied by moderation.Moderator.
type censor interface {
	Censor(original string) string
}

// Dispatcher validates inbound frames, stamps the resulting events and hands
// them to the router. It never waits for delivery.
type Dispatcher struct {
	log           *slog.Logger
	registry      contract.ISessionRegistry
	router        contract.ITopicRouter
	history       contract.IHistory
	censor        censor
	now           func() time.Time
	maxContentLen int
	handlers      map[domain.Subject]handler
}

func NewDispatcher(log *slog.Logger, registry contract.ISessionRegistry, router contract.ITopicRouter,
	history contract.IHistory, maxContentLen int) *Dispatcher {
	d := &Dispatcher{
		log:           log,
		registry:      registry,
		router:        router,
		history:       history,
		now:           time.Now,
		maxContentLen: maxContentLen,
	}
	d.handlers = map[domain.Subject]handler{
		domain.SubjectSendMessage: d.sendMessage,
		domain.SubjectAddUser:     d.addUser,
		domain.SubjectTyping:      d.signal(domain.EventTyping),
		domain.SubjectStopTyping:  d.signal(domain.EventStopTyping),
		domain.SubjectLeave:       d.leave,
		domain.SubjectHistory:     d.replyHistory,
	}
	return d
}

// WithModeration censors CHAT content before it is published.
func (d *Dispatcher) WithModeration(c censor) *Dispatcher {
	d.censor = c
	return d
}

func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Handle routes one inbound frame from a registered session.
// Frames from unknown sessions are protocol violations and never forwarded.
func (d *Dispatcher) Handle(ctx context.Context, id domain.SessionID, in domain.Inbound) (domain.Outcome, error) {
	session, ok := d.registry.Lookup(id)
	if !ok {
		d.log.Warn("Protocol violation: frame from unknown session, dropped",
			"session_id", id, "subject", in.Subject)
		return domain.Outcome{}, fmt.Errorf("%w: %s", errors.ErrUnknownSession, id)
	}

	h, ok := d.handlers[in.Subject]
	if !ok {
		d.log.Warn("Protocol violation: unknown subject, dropped",
			"session_id", id, "subject", in.Subject)
		return domain.Outcome{}, fmt.Errorf("%w: %q", errors.ErrUnknownSubject, in.Subject)
	}
	return h(ctx, session, in)
}

// Leave announces a session that is already gone on each of its former topics.
// Nothing is published when no username was ever established.
func (d *Dispatcher) Leave(ctx context.Context, username string, topics []domain.TopicName) int {
	if username == "" {
		return 0
	}
	delivered := 0
	for _, topic := range topics {
		evt := d.stamp(topic, domain.EventPayload{Sender: username}, domain.EventLeave)
		evt.Content = domain.LeaveAnnouncement(username)
		delivered += d.router.Publish(ctx, topic, evt)
	}
	return delivered
}

func (d *Dispatcher) sendMessage(ctx context.Context, session domain.Session, in domain.Inbound) (domain.Outcome, error) {
	topic, payload, err := d.decode(session, in)
	if err != nil {
		return domain.Outcome{}, err
	}
	evt := d.stamp(topic, payload, domain.EventChat)
	if d.censor != nil {
		evt.Content = d.censor.Censor(evt.Content)
	}
	return d.publish(ctx, evt), nil
}

func (d *Dispatcher) addUser(ctx context.Context, session domain.Session, in domain.Inbound) (domain.Outcome, error) {
	topic, payload, err := d.decode(session, in)
	if err != nil {
		return domain.Outcome{}, err
	}
	if payload.Sender == "" {
		return domain.Outcome{}, fmt.Errorf("%w: join requires a sender", errors.ErrInvalidPayload)
	}
	d.registry.SetUsername(session.ID, payload.Sender)

	evt := d.stamp(topic, payload, domain.EventJoin)
	evt.Content = domain.JoinAnnouncement(payload.Sender)
	d.log.Info("User joined", "session_id", session.ID, "username", payload.Sender, "topic", topic)
	return d.publish(ctx, evt), nil
}

func (d *Dispatcher) signal(eventType domain.EventType) handler {
	return func(ctx context.Context, session domain.Session, in domain.Inbound) (domain.Outcome, error) {
		topic, payload, err := d.decode(session, in)
		if err != nil {
			return domain.Outcome{}, err
		}
		return d.publish(ctx, d.stamp(topic, payload, eventType)), nil
	}
}

// leave destroys the session before announcing it, so the leaver is not
// among the recipients.
func (d *Dispatcher) leave(ctx context.Context, session domain.Session, _ domain.Inbound) (domain.Outcome, error) {
	topics := d.router.UnsubscribeAll(session.ID)
	d.registry.Deregister(session.ID)
	d.log.Info("User left", "session_id", session.ID, "username", session.Username)

	outcome := domain.Outcome{Left: true}
	if session.Username == "" {
		return outcome, nil
	}
	for _, topic := range topics {
		evt := d.stamp(topic, domain.EventPayload{Sender: session.Username}, domain.EventLeave)
		evt.Content = domain.LeaveAnnouncement(session.Username)
		outcome.Event = evt
		outcome.Delivered += d.router.Publish(ctx, topic, evt)
	}
	return outcome, nil
}

func (d *Dispatcher) replyHistory(_ context.Context, _ domain.Session, in domain.Inbound) (domain.Outcome, error) {
	topic, err := d.topicOf(in)
	if err != nil {
		return domain.Outcome{}, err
	}
	reply := domain.HistoryReply(d.history.SnapshotOf(topic))
	return domain.Outcome{Reply: &reply}, nil
}

// topicOf resolves the frame topic. Clients only reach topics the relay
// declared, so they can never create one.
func (d *Dispatcher) topicOf(in domain.Inbound) (domain.TopicName, error) {
	topic, err := in.TopicName()
	if err != nil {
		return "", err
	}
	if !d.router.Declared(topic) {
		return "", fmt.Errorf("%w: %s", errors.ErrUnknownTopic, topic)
	}
	return topic, nil
}

func (d *Dispatcher) decode(session domain.Session, in domain.Inbound) (domain.TopicName, domain.EventPayload, error) {
	topic, err := d.topicOf(in)
	if err != nil {
		return "", domain.EventPayload{}, err
	}
	payload, err := in.Event()
	if err != nil {
		return "", domain.EventPayload{}, err
	}
	if d.maxContentLen > 0 && len(payload.Content) > d.maxContentLen {
		return "", domain.EventPayload{}, fmt.Errorf("%w: content exceeds %d bytes", errors.ErrInvalidPayload, d.maxContentLen)
	}
	if payload.Sender == "" {
		payload.Sender = session.Username
	}
	return topic, payload, nil
}

// stamp builds the immutable event. The client timestamp is never read.
func (d *Dispatcher) stamp(topic domain.TopicName, payload domain.EventPayload, eventType domain.EventType) domain.ChatEvent {
	return domain.ChatEvent{
		ID:        uuid.New(),
		Topic:     topic,
		Content:   payload.Content,
		Sender:    payload.Sender,
		Receiver:  payload.Receiver,
		Type:      eventType,
		Timestamp: d.now().UTC(),
	}
}

func (d *Dispatcher) publish(ctx context.Context, evt domain.ChatEvent) domain.Outcome {
	delivered := d.router.Publish(ctx, evt.Topic, evt)
	d.log.Debug("Event dispatched", "topic", evt.Topic, "type", evt.Type, "sender", evt.Sender, "delivered", delivered)
	return domain.Outcome{Event: evt, Delivered: delivered}
}
