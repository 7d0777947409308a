package runtime

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

var _ contract.IConnections = (*Connections)(nil)

// Connections maps a ConnectionHandle to the outbound side of its transport.
// The transport owns the peer; Connections only addresses it.
type Connections struct {
	mu    sync.RWMutex
	log   *slog.Logger
	peers map[domain.ConnectionHandle]contract.Peer
}

func NewConnections(log *slog.Logger) *Connections {
	return &Connections{
		log:   log,
		peers: make(map[domain.ConnectionHandle]contract.Peer),
	}
}

func (c *Connections) Attach(handle domain.ConnectionHandle, peer contract.Peer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.peers[handle] = peer
}

func (c *Connections) Detach(handle domain.ConnectionHandle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.peers, handle)
}

// Send never blocks: a peer with a full buffer reports ErrSlowConsumer.
func (c *Connections) Send(ctx context.Context, handle domain.ConnectionHandle, frame domain.Outbound) error {
	c.mu.RLock()
	peer, ok := c.peers[handle]
	c.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownConnection, handle)
	}
	return peer.Deliver(ctx, frame)
}

// Close asks the transport to shut down. The peer stays attached until the
// transport detaches it from its own disconnect path.
func (c *Connections) Close(handle domain.ConnectionHandle) {
	c.mu.RLock()
	peer, ok := c.peers[handle]
	c.mu.RUnlock()
	if !ok {
		return
	}
	c.log.Debug("Closing connection", "handle", handle)
	peer.Close()
}

// CloseAll closes every attached peer, used on shutdown.
func (c *Connections) CloseAll() {
	c.mu.RLock()
	peers := lo.Values(c.peers)
	c.mu.RUnlock()
	for _, peer := range peers {
		peer.Close()
	}
}

func (c *Connections) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.peers)
}
