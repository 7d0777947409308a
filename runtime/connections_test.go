package runtime

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"
	"context"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConnections_Send_Reaches_Attached_Peer(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	connections := NewConnections(logs.GetLoggerFromLevel(slog.LevelDebug))
	peer := mocks.NewMockPeer(ctrl)
	handle := domain.NewConnectionHandle("test")
	frame := domain.HistoryReply(nil)

	// Given an attached peer that rejects the second frame
	connections.Attach(handle, peer)
	gomock.InOrder(
		peer.EXPECT().Deliver(gomock.Any(), frame).Return(nil),
		peer.EXPECT().Deliver(gomock.Any(), frame).Return(errors.ErrSlowConsumer),
	)

	// Then the peer error is surfaced as is
	req.NoError(connections.Send(context.Background(), handle, frame))
	req.ErrorIs(connections.Send(context.Background(), handle, frame), errors.ErrSlowConsumer)
	req.Equal(1, connections.Count())
}

func TestConnections_Unknown_Handle(t *testing.T) {
	req := require.New(t)
	connections := NewConnections(logs.GetLoggerFromLevel(slog.LevelDebug))
	handle := domain.NewConnectionHandle("test")

	err := connections.Send(context.Background(), handle, domain.HistoryReply(nil))

	req.ErrorIs(err, errors.ErrUnknownConnection)
	connections.Close(handle)
	connections.Detach(handle)
	req.Zero(connections.Count())
}

func TestConnections_Close_Keeps_Peer_Attached(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	connections := NewConnections(logs.GetLoggerFromLevel(slog.LevelDebug))
	first, second := mocks.NewMockPeer(ctrl), mocks.NewMockPeer(ctrl)
	connections.Attach("a", first)
	connections.Attach("b", second)

	// When a single peer is closed and then everything
	first.EXPECT().Close().Times(2)
	second.EXPECT().Close().Times(1)
	connections.Close("a")
	connections.CloseAll()

	// Then detaching stays the transport's job
	req.Equal(2, connections.Count())
	connections.Detach("a")
	req.Equal(1, connections.Count())
}
