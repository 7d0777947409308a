package gateway

import (
	"chat-relay/contract"
	"context"
	"time"
)

var _ contract.Worker = (*PollReaper)(nil)

// PollReaper periodically drops abandoned long-poll connections.
type PollReaper struct {
	transport *LongPollTransport
	interval  time.Duration
}

func NewPollReaper(transport *LongPollTransport, interval time.Duration) *PollReaper {
	return &PollReaper{transport: transport, interval: interval}
}

func (r *PollReaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.transport.Reap(ctx, now)
		}
	}
}
