package runtime

import (
	"chat-relay/domain"
	"chat-relay/mocks"
	"chat-relay/sink"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type routerFixture struct {
	registry    *Registry
	connections *Connections
	router      *Router
}

func newRouterFixture() routerFixture {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry(log)
	connections := NewConnections(log)
	router := NewRouter(log, registry, connections)
	router.Declare(domain.DefaultTopic, "support")
	return routerFixture{
		registry:    registry,
		connections: connections,
		router:      router,
	}
}

// connect registers a session backed by a buffered peer, the way the gateway does.
func (f routerFixture) connect(username string, bufferSize int) (domain.SessionID, *sink.BufferedSink) {
	handle := domain.NewConnectionHandle("test")
	peer := sink.NewBufferedSink(bufferSize)
	id := f.registry.Register(handle, username, domain.RoleCustomer)
	f.connections.Attach(handle, peer)
	return id, peer
}

func routedEvent(content string) domain.ChatEvent {
	return domain.ChatEvent{ID: uuid.New(), Topic: domain.DefaultTopic, Content: content, Sender: "alice", Type: domain.EventChat}
}

func TestRouter_Publish_Reaches_Every_Subscriber(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()

	// Given three sessions subscribed to public
	var peers []*sink.BufferedSink
	for _, name := range []string{"alice", "bob", "carol"} {
		id, peer := f.connect(name, 8)
		f.router.Subscribe(domain.DefaultTopic, id)
		peers = append(peers, peer)
	}

	// When one event is published
	delivered := f.router.Publish(context.Background(), domain.DefaultTopic, routedEvent("hi"))

	// Then each subscriber received it exactly once
	req.Equal(3, delivered)
	for _, peer := range peers {
		frames := peer.Drain()
		req.Len(frames, 1)
		req.Equal("/topic/public", frames[0].Subject)
		req.Equal("hi", frames[0].Event.Content)
	}
}

func TestRouter_Publish_Keeps_Per_Topic_Order(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()
	const publishers, perPublisher = 4, 50

	var peers []*sink.BufferedSink
	for i := 0; i < 3; i++ {
		id, peer := f.connect(fmt.Sprintf("user-%d", i), publishers*perPublisher)
		f.router.Subscribe(domain.DefaultTopic, id)
		peers = append(peers, peer)
	}

	// When several goroutines publish to the same topic concurrently
	var wg sync.WaitGroup
	for p := 0; p < publishers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perPublisher; i++ {
				f.router.Publish(context.Background(), domain.DefaultTopic, routedEvent(fmt.Sprintf("%d-%d", p, i)))
			}
		}(p)
	}
	wg.Wait()

	// Then every subscriber observed the same sequence
	reference := frameContents(peers[0].Drain())
	req.Len(reference, publishers*perPublisher)
	for _, peer := range peers[1:] {
		req.Equal(reference, frameContents(peer.Drain()))
	}
}

func TestRouter_Subscribe_And_Unsubscribe_Are_Idempotent(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()
	id, peer := f.connect("alice", 8)

	// When subscribing twice
	f.router.Subscribe(domain.DefaultTopic, id)
	f.router.Subscribe(domain.DefaultTopic, id)

	// Then a publish is received once
	req.Equal(1, f.router.Publish(context.Background(), domain.DefaultTopic, routedEvent("once")))
	req.Len(peer.Drain(), 1)

	// When unsubscribing twice
	f.router.Unsubscribe(domain.DefaultTopic, id)
	f.router.Unsubscribe(domain.DefaultTopic, id)
	f.router.Unsubscribe("unknown", id)

	// Then the topic survives without subscribers
	req.Empty(f.router.Subscribers(domain.DefaultTopic))
	req.Empty(f.router.TopicsOf(id))
	req.Contains(f.router.Topics(), domain.DefaultTopic)
	req.Zero(f.router.Publish(context.Background(), domain.DefaultTopic, routedEvent("nobody")))
}

func TestRouter_UnsubscribeAll_Returns_Former_Topics(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()
	id, _ := f.connect("alice", 8)
	f.router.Subscribe("support", id)
	f.router.Subscribe(domain.DefaultTopic, id)

	topics := f.router.UnsubscribeAll(id)

	req.Equal([]domain.TopicName{"public", "support"}, topics)
	req.Empty(f.router.TopicsOf(id))
	req.Empty(f.router.UnsubscribeAll(id))
}

func TestRouter_Slow_Consumer_Is_Evicted(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()

	// Given a fast subscriber and one whose buffer holds a single frame
	fast, fastPeer := f.connect("fast", 8)
	slow, slowPeer := f.connect("slow", 1)
	f.router.Subscribe(domain.DefaultTopic, fast)
	f.router.Subscribe(domain.DefaultTopic, slow)
	f.router.Subscribe("support", slow)

	// When two events are published without the slow one draining
	req.Equal(2, f.router.Publish(context.Background(), domain.DefaultTopic, routedEvent("1")))
	delivered := f.router.Publish(context.Background(), domain.DefaultTopic, routedEvent("2"))

	// Then the fast one is unaffected and the slow one is gone everywhere
	req.Equal(1, delivered)
	req.Len(fastPeer.Drain(), 2)
	req.Equal([]domain.SessionID{fast}, f.router.Subscribers(domain.DefaultTopic))
	req.Empty(f.router.Subscribers("support"))
	_, ok := f.registry.Lookup(slow)
	req.False(ok)

	// And its transport was asked to close
	select {
	case <-slowPeer.Done():
	default:
		req.Fail("slow peer should be closed")
	}
}

func TestRouter_Unknown_Session_Is_Dropped_From_Topic(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()
	id, _ := f.connect("ghost", 8)
	f.router.Subscribe(domain.DefaultTopic, id)

	// Given the session vanished from the registry but not from the topic
	f.registry.Deregister(id)

	// When a publish happens
	delivered := f.router.Publish(context.Background(), domain.DefaultTopic, routedEvent("hi"))

	// Then nothing is delivered and the membership is cleaned
	req.Zero(delivered)
	req.Empty(f.router.Subscribers(domain.DefaultTopic))
}

func TestRouter_Journal_Failure_Does_Not_Affect_Delivery(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newRouterFixture()
	journal := mocks.NewMockEventSink(ctrl)
	f.router.Attach(journal)

	id, peer := f.connect("alice", 8)
	f.router.Subscribe(domain.DefaultTopic, id)
	evt := routedEvent("hi")

	// Given a journal that fails
	journal.EXPECT().Consume(gomock.Any(), evt).Return(fmt.Errorf("disk full")).Times(1)

	// When an event is published
	delivered := f.router.Publish(context.Background(), domain.DefaultTopic, evt)

	// Then the subscriber still got it
	req.Equal(1, delivered)
	req.Len(peer.Drain(), 1)
}

func TestRouter_Journal_Sees_Publish_Order(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()
	history := NewHistory(0)
	f.router.Attach(sink.NewHistorySink(history))

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				f.router.Publish(context.Background(), domain.DefaultTopic, routedEvent(fmt.Sprintf("%d-%d", p, i)))
			}
		}(p)
	}
	wg.Wait()

	req.Equal(100, history.Len())
}

func TestRouter_Publish_To_Unknown_Topic_Creates_Nothing(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()

	// When publishing on a topic nobody declared
	delivered := f.router.Publish(context.Background(), "junk", routedEvent("hi"))

	// Then nothing is delivered and the topic set is unchanged
	req.Zero(delivered)
	req.False(f.router.Declared("junk"))
	req.Equal([]domain.TopicName{"public", "support"}, f.router.Topics())
}

func TestRouter_SubscribeAfter_Leaves_No_Gap(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()
	id, peer := f.connect("alice", 8)
	entered := make(chan struct{})
	published := make(chan int, 1)

	// Given a handoff in progress on public
	go func() {
		<-entered
		published <- f.router.Publish(context.Background(), domain.DefaultTopic, routedEvent("racing"))
	}()
	err := f.router.SubscribeAfter(domain.DefaultTopic, id, func() error {
		close(entered)
		select {
		case <-published:
			return fmt.Errorf("publish went through during the handoff")
		case <-time.After(50 * time.Millisecond):
		}
		return nil
	})

	// Then the concurrent publish waited for the subscription and reached it
	req.NoError(err)
	req.Equal(1, <-published)
	req.Equal([]string{"racing"}, frameContents(peer.Drain()))
}

func TestRouter_SubscribeAfter_Failed_Handoff_Does_Not_Subscribe(t *testing.T) {
	req := require.New(t)
	f := newRouterFixture()
	id, _ := f.connect("alice", 8)

	err := f.router.SubscribeAfter(domain.DefaultTopic, id, func() error { return fmt.Errorf("peer gone") })

	req.EqualError(err, "peer gone")
	req.Empty(f.router.Subscribers(domain.DefaultTopic))
	req.Empty(f.router.TopicsOf(id))
}

func frameContents(frames []domain.Outbound) []string {
	out := make([]string, 0, len(frames))
	for _, frame := range frames {
		out = append(out, frame.Event.Content)
	}
	return out
}
