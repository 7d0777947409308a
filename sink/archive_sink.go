package sink

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/errors"
	"context"
	"fmt"
	"log/slog"
)

var _ contract.EventSink = (*ArchiveSink)(nil)

// ArchiveSink hands persistable events to the archive worker.
// It runs under the topic lock, so it never touches the disk itself.
type ArchiveSink struct {
	log    *slog.Logger
	events chan domain.ChatEvent
}

func NewArchiveSink(log *slog.Logger, bufferSize int) *ArchiveSink {
	return &ArchiveSink{log: log, events: make(chan domain.ChatEvent, bufferSize)}
}

func (a *ArchiveSink) Consume(_ context.Context, evt domain.ChatEvent) error {
	if !evt.Type.Persistable() {
		return nil
	}
	select {
	case a.events <- evt:
		return nil
	default:
		return fmt.Errorf("%w: event %s dropped", errors.ErrArchiveBacklog, evt.ID)
	}
}

// Events is drained by workers.ArchiveWorker.
func (a *ArchiveSink) Events() <-chan domain.ChatEvent {
	return a.events
}
