package sink

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"context"
	"sync"
)

var _ contract.Peer = (*BufferedSink)(nil)

// BufferedSink is the bounded outbound queue of one connection.
// The transport drains Frames and stops when Done is closed.
type BufferedSink struct {
	frames chan domain.Outbound
	done   chan struct{}
	once   sync.Once
}

func NewBufferedSink(size int) *BufferedSink {
	return &BufferedSink{
		frames: make(chan domain.Outbound, size),
		done:   make(chan struct{}),
	}
}

// Deliver never blocks. A full buffer means the consumer is too slow.
func (b *BufferedSink) Deliver(_ context.Context, frame domain.Outbound) error {
	select {
	case <-b.done:
		return errors.ErrPeerClosed
	default:
	}

	select {
	case b.frames <- frame:
		return nil
	default:
		return errors.ErrSlowConsumer
	}
}

func (b *BufferedSink) Close() {
	b.once.Do(func() { close(b.done) })
}

func (b *BufferedSink) Frames() <-chan domain.Outbound { return b.frames }

func (b *BufferedSink) Done() <-chan struct{} { return b.done }

// Drain returns the frames queued right now, without waiting.
func (b *BufferedSink) Drain() []domain.Outbound {
	var out []domain.Outbound
	for {
		select {
		case frame := <-b.frames:
			out = append(out, frame)
		default:
			return out
		}
	}
}
