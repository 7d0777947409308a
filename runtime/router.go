package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/lo"
)

var _ contract.ITopicRouter = (*Router)(nil)

// topic is the serialization point of one broadcast channel.
// Its mutex is held for the whole of a publish, so every subscriber
// observes publishes to the same topic in the same order.
type topic struct {
	mu          sync.Mutex
	subscribers map[domain.SessionID]struct{}
}

// Router maps topic names to subscriber sets and fans events out.
// Lock order is topic.mu then membersMu. A goroutine never holds two topic locks.
type Router struct {
	mu          sync.RWMutex
	log         *slog.Logger
	registry    contract.ISessionRegistry
	connections contract.IConnections
	topics      map[domain.TopicName]*topic
	journals    []contract.EventSink

	membersMu sync.Mutex
	members   map[domain.SessionID]map[domain.TopicName]struct{}
}

func NewRouter(log *slog.Logger, registry contract.ISessionRegistry, connections contract.IConnections) *Router {
	return &Router{
		log:         log,
		registry:    registry,
		connections: connections,
		topics:      make(map[domain.TopicName]*topic),
		members:     make(map[domain.SessionID]map[domain.TopicName]struct{}),
	}
}

// Attach registers journal sinks. They see every published event after
// subscribers, in publish order, and their failures never reach the publisher.
func (r *Router) Attach(sinks ...contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journals = append(r.journals, sinks...)
}

// Declare creates topics up front. Topics are never destroyed, and only
// Declare and Subscribe create them.
func (r *Router) Declare(names ...domain.TopicName) {
	for _, name := range names {
		r.topic(name)
	}
}

// Declared reports whether the topic exists.
func (r *Router) Declared(name domain.TopicName) bool {
	_, ok := r.lookup(name)
	return ok
}

func (r *Router) lookup(name domain.TopicName) (*topic, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.topics[name]
	return t, ok
}

func (r *Router) topic(name domain.TopicName) *topic {
	if t, ok := r.lookup(name); ok {
		return t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.topics[name]; ok {
		return t
	}
	t := &topic{subscribers: make(map[domain.SessionID]struct{})}
	r.topics[name] = t
	return t
}

func (r *Router) Subscribe(name domain.TopicName, id domain.SessionID) {
	t := r.topic(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	r.subscribe(t, name, id)
}

// SubscribeAfter runs handoff under the topic lock and subscribes the session
// only if it succeeds. No publish on the topic can fall between what handoff
// observes and the first event the session receives.
func (r *Router) SubscribeAfter(name domain.TopicName, id domain.SessionID, handoff func() error) error {
	t := r.topic(name)
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := handoff(); err != nil {
		return err
	}
	r.subscribe(t, name, id)
	return nil
}

// subscribe expects t.mu to be held.
func (r *Router) subscribe(t *topic, name domain.TopicName, id domain.SessionID) {
	t.subscribers[id] = struct{}{}

	r.membersMu.Lock()
	defer r.membersMu.Unlock()
	set, ok := r.members[id]
	if !ok {
		set = make(map[domain.TopicName]struct{})
		r.members[id] = set
	}
	set[name] = struct{}{}
}

func (r *Router) Unsubscribe(name domain.TopicName, id domain.SessionID) {
	t, ok := r.lookup(name)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subscribers, id)

	r.membersMu.Lock()
	defer r.membersMu.Unlock()
	if set, ok := r.members[id]; ok {
		delete(set, name)
		if len(set) == 0 {
			delete(r.members, id)
		}
	}
}

// UnsubscribeAll removes the session from every topic and returns the
// topics it belonged to, sorted by name.
func (r *Router) UnsubscribeAll(id domain.SessionID) []domain.TopicName {
	names := r.TopicsOf(id)
	for _, name := range names {
		r.Unsubscribe(name, id)
	}
	return names
}

// Publish delivers evt to every current subscriber of the topic and returns
// how many accepted it. Subscribers that cannot accept the event are evicted
// once the topic lock is released. Publishing to an unknown topic is a no-op.
func (r *Router) Publish(ctx context.Context, name domain.TopicName, evt domain.ChatEvent) int {
	t, ok := r.lookup(name)
	if !ok {
		r.log.Debug("Publish to unknown topic ignored", "topic", name, "type", evt.Type)
		return 0
	}
	frame := domain.Broadcast(evt)

	r.mu.RLock()
	journals := r.journals
	r.mu.RUnlock()

	var failed []domain.SessionID
	delivered := 0

	t.mu.Lock()
	for id := range t.subscribers {
		session, ok := r.registry.Lookup(id)
		if !ok {
			failed = append(failed, id)
			continue
		}
		if err := r.connections.Send(ctx, session.Handle, frame); err != nil {
			r.log.Warn("Delivery failed, evicting subscriber",
				"topic", name, "session_id", id, "handle", session.Handle, "error", err)
			failed = append(failed, id)
			continue
		}
		delivered++
	}
	for _, journal := range journals {
		if err := journal.Consume(ctx, evt); err != nil {
			r.log.Error("Journal sink failed", "topic", name, "event_id", evt.ID, "error", err)
		}
	}
	t.mu.Unlock()

	for _, id := range failed {
		r.evict(id)
	}

	r.log.Debug("Event published", "topic", name, "type", evt.Type, "delivered", delivered)
	return delivered
}

// evict treats a failed delivery as an implicit disconnect.
// Closing the peer ends the transport, which runs the gateway disconnect path.
func (r *Router) evict(id domain.SessionID) {
	r.UnsubscribeAll(id)
	session, ok := r.registry.Lookup(id)
	if !ok {
		return
	}
	r.registry.Deregister(id)
	r.connections.Close(session.Handle)
}

func (r *Router) Subscribers(name domain.TopicName) []domain.SessionID {
	t, ok := r.lookup(name)
	if !ok {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return lo.Keys(t.subscribers)
}

func (r *Router) TopicsOf(id domain.SessionID) []domain.TopicName {
	r.membersMu.Lock()
	names := lo.Keys(r.members[id])
	r.membersMu.Unlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

func (r *Router) Topics() []domain.TopicName {
	r.mu.RLock()
	names := lo.Keys(r.topics)
	r.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
