package sink

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"context"
)

var _ contract.EventSink = (*HistorySink)(nil)

// HistorySink keeps persistable events in the in-memory history.
// Typing signals are skipped.
type HistorySink struct {
	history contract.IHistory
}

func NewHistorySink(history contract.IHistory) *HistorySink {
	return &HistorySink{history: history}
}

func (h *HistorySink) Consume(_ context.Context, evt domain.ChatEvent) error {
	if !evt.Type.Persistable() {
		return nil
	}
	h.history.Append(evt)
	return nil
}
