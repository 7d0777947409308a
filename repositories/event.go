package repositories

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var _ contract.IEventRepository = EventRepository{}

const eventPrefix = "evt:"

type EventRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewEventRepository(db *badger.DB, log *slog.Logger) EventRepository {
	return EventRepository{db: db, log: log}
}

// diskEvent is the stored shape of a ChatEvent.
type diskEvent struct {
	ID       string  `json:"id"`
	Topic    string  `json:"topic"`
	Content  string  `json:"content"`
	Sender   string  `json:"sender"`
	Receiver *string `json:"receiver,omitempty"`
	Type     string  `json:"type"`
	At       int64   `json:"at"`
}

// StoreEvent persists an event under "evt:{topic}:{unixnano padded to 19}:{uuid}".
// The padding keeps keys of one topic in chronological order and the uuid
// separates events stamped within the same nanosecond.
func (r EventRepository) StoreEvent(evt domain.ChatEvent) error {
	key := fmt.Sprintf("%s%s:%019d:%s", eventPrefix, evt.Topic, evt.Timestamp.UnixNano(), evt.ID)
	bytes, err := json.Marshal(fromChatEvent(evt))
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// GetEvents returns the newest events of a topic, oldest first.
// A limit <= 0 returns the whole topic.
func (r EventRepository) GetEvents(topic domain.TopicName, limit int) ([]domain.ChatEvent, error) {
	var stored []diskEvent
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("%s%s:", eventPrefix, topic))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts from the greatest key under the prefix
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(stored) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d events reached", limit))
				break
			}
			var evt diskEvent
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &evt)
			})
			if err != nil {
				return err
			}
			stored = append(stored, evt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events := make([]domain.ChatEvent, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		evt, err := toChatEvent(stored[i])
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, nil
}

// Topics lists every topic that has at least one archived event.
func (r EventRepository) Topics() ([]domain.TopicName, error) {
	var topics []domain.TopicName
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(eventPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if name, _, ok := strings.Cut(string(it.Item().Key()[len(prefix):]), ":"); ok {
				topics = append(topics, domain.TopicName(name))
			}
		}
		return nil
	})
	return lo.Uniq(topics), err
}

func fromChatEvent(evt domain.ChatEvent) diskEvent {
	return diskEvent{
		ID:       evt.ID.String(),
		Topic:    string(evt.Topic),
		Content:  evt.Content,
		Sender:   evt.Sender,
		Receiver: evt.Receiver,
		Type:     string(evt.Type),
		At:       evt.Timestamp.UnixNano(),
	}
}

func toChatEvent(evt diskEvent) (domain.ChatEvent, error) {
	parsedID, err := uuid.Parse(evt.ID)
	if err != nil {
		return domain.ChatEvent{}, err
	}
	return domain.ChatEvent{
		ID:        parsedID,
		Topic:     domain.TopicName(evt.Topic),
		Content:   evt.Content,
		Sender:    evt.Sender,
		Receiver:  evt.Receiver,
		Type:      domain.EventType(evt.Type),
		Timestamp: time.Unix(0, evt.At).UTC(),
	}, nil
}
