package runtime

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
	"chat-relay/sink"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type dispatcherFixture struct {
	routerFixture
	history    *History
	dispatcher *Dispatcher
}

func newDispatcherFixture(maxContentLen int) dispatcherFixture {
	f := newRouterFixture()
	history := NewHistory(0)
	f.router.Attach(sink.NewHistorySink(history))
	return dispatcherFixture{
		routerFixture: f,
		history:       history,
		dispatcher:    NewDispatcher(logs.GetLoggerFromLevel(slog.LevelDebug), f.registry, f.router, history, maxContentLen),
	}
}

func (f dispatcherFixture) join() (domain.SessionID, *sink.BufferedSink) {
	id, peer := f.connect("", 64)
	f.router.Subscribe(domain.DefaultTopic, id)
	return id, peer
}

func frame(subject domain.Subject, payload string) domain.Inbound {
	return domain.Inbound{Subject: subject, Payload: json.RawMessage(payload)}
}

type wordCensor struct{}

func (wordCensor) Censor(original string) string { return strings.ReplaceAll(original, "darn", "****") }

func TestDispatcher_Join_Chat_History_Typing_Scenario(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4096)
	ctx := context.Background()

	// Given A joins public with an empty history
	a, peerA := f.join()
	req.Empty(f.history.Snapshot())
	_, err := f.dispatcher.Handle(ctx, a, frame(domain.SubjectAddUser, `{"sender":"A","type":"JOIN"}`))
	req.NoError(err)

	// When A says hi and B joins afterwards
	_, err = f.dispatcher.Handle(ctx, a, frame(domain.SubjectSendMessage, `{"content":"hi","sender":"A","type":"CHAT"}`))
	req.NoError(err)
	b, peerB := f.join()
	peerA.Drain()

	// Then B's history request returns the join then the chat
	outcome, err := f.dispatcher.Handle(ctx, b, frame(domain.SubjectHistory, ``))
	req.NoError(err)
	req.False(outcome.Published())
	req.NotNil(outcome.Reply)
	req.Equal(domain.OutboundHistory, outcome.Reply.Subject)
	req.Len(outcome.Reply.History, 2)
	req.Equal(domain.EventJoin, outcome.Reply.History[0].Type)
	req.Equal("A", outcome.Reply.History[0].Sender)
	req.Equal("A has joined", outcome.Reply.History[0].Content)
	req.Equal(domain.EventChat, outcome.Reply.History[1].Type)
	req.Equal("hi", outcome.Reply.History[1].Content)

	// When A starts typing
	outcome, err = f.dispatcher.Handle(ctx, a, frame(domain.SubjectTyping, `{"sender":"A","type":"TYPING"}`))
	req.NoError(err)

	// Then both receive it but the history ignores it
	req.Equal(2, outcome.Delivered)
	req.Len(peerA.Drain(), 1)
	req.Len(peerB.Drain(), 1)
	req.Len(f.history.Snapshot(), 2)
}

func TestDispatcher_Join_Sets_Username(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4096)
	id, _ := f.join()

	outcome, err := f.dispatcher.Handle(context.Background(), id,
		frame(domain.SubjectAddUser, `{"sender":"  Alice ","content":"whatever","type":"CHAT"}`))

	req.NoError(err)
	req.Equal(domain.EventJoin, outcome.Event.Type)
	req.Equal("Alice has joined", outcome.Event.Content)
	session, _ := f.registry.Lookup(id)
	req.Equal("Alice", session.Username)
}

func TestDispatcher_Join_Without_Sender_Is_Rejected(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4096)
	id, peer := f.join()

	_, err := f.dispatcher.Handle(context.Background(), id, frame(domain.SubjectAddUser, `{"type":"JOIN"}`))

	req.ErrorIs(err, errors.ErrInvalidPayload)
	req.Empty(peer.Drain())
	req.Zero(f.history.Len())
}

func TestDispatcher_Timestamp_Is_Server_Assigned(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4096)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.dispatcher.WithClock(func() time.Time { return fixed })
	id, _ := f.join()

	// When the client forges a timestamp
	outcome, err := f.dispatcher.Handle(context.Background(), id,
		frame(domain.SubjectSendMessage, `{"content":"hi","sender":"A","timestamp":"1999-01-01T00:00:00Z"}`))

	// Then the server clock wins
	req.NoError(err)
	req.Equal(fixed, outcome.Event.Timestamp)
	req.Equal(domain.DefaultTopic, outcome.Event.Topic)
	req.Equal("A", outcome.Event.Sender)
}

func TestDispatcher_Chat_Is_Moderated(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4096)
	f.dispatcher.WithModeration(wordCensor{})
	id, _ := f.join()

	outcome, err := f.dispatcher.Handle(context.Background(), id,
		frame(domain.SubjectSendMessage, `{"content":"oh darn it","sender":"A"}`))

	req.NoError(err)
	req.Equal("oh **** it", outcome.Event.Content)
	req.Equal("oh **** it", f.history.Snapshot()[0].Content)
}

func TestDispatcher_Content_Too_Long_Is_Rejected(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4)
	id, _ := f.join()

	_, err := f.dispatcher.Handle(context.Background(), id,
		frame(domain.SubjectSendMessage, `{"content":"too long","sender":"A"}`))

	req.ErrorIs(err, errors.ErrInvalidPayload)
}

func TestDispatcher_Unknown_Subject_Is_Rejected(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4096)
	id, peer := f.join()

	_, err := f.dispatcher.Handle(context.Background(), id, frame("chat.shout", `{}`))

	req.ErrorIs(err, errors.ErrUnknownSubject)
	req.Empty(peer.Drain())
}

func TestDispatcher_Undeclared_Topic_Is_Rejected(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4096)
	id, peer := f.join()
	ctx := context.Background()
	before := f.router.Topics()

	// When one client targets many topics nobody declared
	for i := 0; i < 500; i++ {
		in := frame(domain.SubjectTyping, `{"sender":"A"}`)
		in.Topic = fmt.Sprintf("junk%d", i)
		_, err := f.dispatcher.Handle(ctx, id, in)
		req.ErrorIs(err, errors.ErrUnknownTopic)
		req.ErrorIs(err, errors.ErrInvalidPayload)
	}
	_, err := f.dispatcher.Handle(ctx, id, domain.Inbound{Subject: domain.SubjectHistory, Topic: "/topic/junk"})
	req.ErrorIs(err, errors.ErrUnknownTopic)

	// Then the topic set never grows and nothing was broadcast
	req.Equal(before, f.router.Topics())
	req.Empty(peer.Drain())
	req.Zero(f.history.Len())
}

func TestDispatcher_Leave_Destroys_Session_And_Announces(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4096)
	ctx := context.Background()
	a, peerA := f.join()
	_, peerB := f.join()
	_, err := f.dispatcher.Handle(ctx, a, frame(domain.SubjectAddUser, `{"sender":"A"}`))
	req.NoError(err)
	peerA.Drain()
	peerB.Drain()

	// When A leaves explicitly
	outcome, err := f.dispatcher.Handle(ctx, a, frame(domain.SubjectLeave, ``))

	// Then A is gone and only B hears the announcement
	req.NoError(err)
	req.True(outcome.Left)
	req.Equal(domain.EventLeave, outcome.Event.Type)
	req.Equal("A has left", outcome.Event.Content)
	req.Equal(1, outcome.Delivered)
	req.Empty(peerA.Drain())
	req.Len(peerB.Drain(), 1)
	_, ok := f.registry.Lookup(a)
	req.False(ok)
	req.Empty(f.router.TopicsOf(a))
	req.Equal(domain.EventLeave, f.history.Snapshot()[1].Type)
}

func TestDispatcher_Transport_Leave_Without_Username_Is_Silent(t *testing.T) {
	req := require.New(t)
	f := newDispatcherFixture(4096)
	_, peer := f.join()

	req.Zero(f.dispatcher.Leave(context.Background(), "", []domain.TopicName{domain.DefaultTopic}))
	req.Empty(peer.Drain())

	req.Equal(1, f.dispatcher.Leave(context.Background(), "A", []domain.TopicName{domain.DefaultTopic}))
	frames := peer.Drain()
	req.Len(frames, 1)
	req.Equal("A has left", frames[0].Event.Content)
}

func TestDispatcher_Unknown_Session_Is_Dropped(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	registry := mocks.NewMockISessionRegistry(ctrl)
	router := mocks.NewMockITopicRouter(ctrl)
	history := mocks.NewMockIHistory(ctrl)
	dispatcher := NewDispatcher(logs.GetLoggerFromLevel(slog.LevelDebug), registry, router, history, 4096)
	unknown := domain.NewSessionID()

	// Given the registry doesn't know the session
	registry.EXPECT().Lookup(unknown).Return(domain.Session{}, false).Times(1)
	// Then nothing is ever published
	router.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// When the session sends a chat message
	outcome, err := dispatcher.Handle(context.Background(), unknown,
		frame(domain.SubjectSendMessage, `{"content":"hi","sender":"ghost"}`))

	req.ErrorIs(err, errors.ErrUnknownSession)
	req.False(outcome.Published())
}
