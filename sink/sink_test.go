package sink

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func chatEvent(eventType domain.EventType) domain.ChatEvent {
	return domain.ChatEvent{ID: uuid.New(), Topic: domain.DefaultTopic, Sender: "alice", Type: eventType}
}

func TestHistorySink_Skips_Typing_Signals(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	history := mocks.NewMockIHistory(ctrl)
	historySink := NewHistorySink(history)

	// Given persistable events are appended exactly once each
	history.EXPECT().Append(gomock.Any()).Times(3)

	// When every event type goes through the sink
	for _, eventType := range []domain.EventType{
		domain.EventChat, domain.EventJoin, domain.EventLeave,
		domain.EventTyping, domain.EventStopTyping,
	} {
		req.NoError(historySink.Consume(context.Background(), chatEvent(eventType)))
	}
}

func TestArchiveSink_Reports_Backlog(t *testing.T) {
	req := require.New(t)
	archive := NewArchiveSink(logs.GetLoggerFromLevel(slog.LevelDebug), 1)

	// Given a buffer of one already holding an event
	req.NoError(archive.Consume(context.Background(), chatEvent(domain.EventChat)))

	// When another event arrives
	err := archive.Consume(context.Background(), chatEvent(domain.EventJoin))

	// Then it is rejected without blocking
	req.ErrorIs(err, errors.ErrArchiveBacklog)
	req.Len(archive.Events(), 1)

	// And typing signals are never queued
	req.NoError(archive.Consume(context.Background(), chatEvent(domain.EventTyping)))
	req.Len(archive.Events(), 1)
}

func TestBufferedSink_Full_Buffer_Is_Slow_Consumer(t *testing.T) {
	req := require.New(t)
	peer := NewBufferedSink(2)
	frame := domain.Broadcast(chatEvent(domain.EventChat))

	// Given a buffer filled to capacity
	req.NoError(peer.Deliver(context.Background(), frame))
	req.NoError(peer.Deliver(context.Background(), frame))

	// When one more frame is delivered
	err := peer.Deliver(context.Background(), frame)

	// Then the consumer is reported as slow
	req.ErrorIs(err, errors.ErrSlowConsumer)
	req.Len(peer.Drain(), 2)
	req.Empty(peer.Drain())
}

func TestBufferedSink_Closed_Peer_Rejects_Frames(t *testing.T) {
	req := require.New(t)
	peer := NewBufferedSink(4)

	// When the peer is closed twice
	peer.Close()
	peer.Close()

	// Then Done is closed and deliveries fail
	select {
	case <-peer.Done():
	default:
		req.Fail("Done should be closed")
	}
	err := peer.Deliver(context.Background(), domain.Broadcast(chatEvent(domain.EventChat)))
	req.ErrorIs(err, errors.ErrPeerClosed)
}
