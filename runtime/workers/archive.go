package workers

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"context"
	"log/slog"
)

// ArchiveWorker writes queued events to the durable repository.
// Storage errors are logged per event; the worker keeps draining.
type ArchiveWorker struct {
	log        *slog.Logger
	events     <-chan domain.ChatEvent
	repository contract.IEventRepository
}

func NewArchiveWorker(log *slog.Logger, events <-chan domain.ChatEvent, repository contract.IEventRepository) *ArchiveWorker {
	return &ArchiveWorker{log: log, events: events, repository: repository}
}

func (w *ArchiveWorker) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.store(evt)
		case <-ctx.Done():
			w.flush()
			return nil
		}
	}
}

// flush stores what is already queued at shutdown.
func (w *ArchiveWorker) flush() {
	for {
		select {
		case evt := <-w.events:
			w.store(evt)
		default:
			return
		}
	}
}

func (w *ArchiveWorker) store(evt domain.ChatEvent) {
	if err := w.repository.StoreEvent(evt); err != nil {
		w.log.Error("Failed to archive event", "event_id", evt.ID, "topic", evt.Topic, "error", err)
	}
}
