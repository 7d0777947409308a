// Package runtime owns the shared state of the relay: sessions, topics,
// history, and the dispatcher that ties them together.
package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/moderation"
	"chat-relay/runtime/workers"
	"chat-relay/sink"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
)

type Options struct {
	HistorySize         int
	MaxContentLen       int
	DefaultTopics       []domain.TopicName
	SupportTopics       []domain.TopicName
	CensoredWordsDir    string
	CharReplacement     rune
	ArchiveBufferSize   int
	HistoryRestoreLimit int
	HeartbeatInterval   time.Duration
}

// Orchestrator builds the components, attaches the journal sinks and runs
// the background workers under the supervisor.
type Orchestrator struct {
	mu          sync.Mutex
	log         *slog.Logger
	options     Options
	supervisor  contract.ISupervisor
	registry    *Registry
	connections *Connections
	router      *Router
	history     *History
	dispatcher  *Dispatcher
	repository  contract.IEventRepository
	words       fs.FS
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, options Options) *Orchestrator {
	if len(options.DefaultTopics) == 0 {
		options.DefaultTopics = []domain.TopicName{domain.DefaultTopic}
	}
	registry := NewRegistry(log)
	connections := NewConnections(log)
	router := NewRouter(log, registry, connections)
	history := NewHistory(options.HistorySize)

	router.Declare(options.DefaultTopics...)
	router.Declare(options.SupportTopics...)
	router.Attach(sink.NewHistorySink(history))

	return &Orchestrator{
		log:         log,
		options:     options,
		supervisor:  supervisor,
		registry:    registry,
		connections: connections,
		router:      router,
		history:     history,
		dispatcher:  NewDispatcher(log, registry, router, history, options.MaxContentLen),
	}
}

// WithArchive persists every persistable event through repository.
func (o *Orchestrator) WithArchive(repository contract.IEventRepository) *Orchestrator {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.repository = repository
	return o
}

// WithCensoredWords overrides the dictionary location, mostly for tests.
func (o *Orchestrator) WithCensoredWords(words fs.FS) *Orchestrator {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.words = words
	return o
}

// Add registers extra workers (transport reapers...) before Start.
func (o *Orchestrator) Add(w ...contract.Worker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.supervisor.Add(w...)
}

// Prepare does the I/O bound setup: dictionary loading, automaton build,
// history warm start and archive wiring. It must run before traffic is accepted.
func (o *Orchestrator) Prepare() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.prepareModeration(); err != nil {
		return err
	}
	if o.repository != nil {
		if err := o.restoreHistory(); err != nil {
			return err
		}
		archive := sink.NewArchiveSink(o.log, o.options.ArchiveBufferSize)
		o.router.Attach(archive)
		o.supervisor.Add(workers.NewArchiveWorker(o.log, archive.Events(), o.repository))
	}
	if o.options.HeartbeatInterval > 0 {
		o.supervisor.Add(workers.NewHeartbeatWorker(o.log, o, o.options.HeartbeatInterval))
	}
	return nil
}

func (o *Orchestrator) prepareModeration() error {
	words := o.words
	if words == nil && o.options.CensoredWordsDir != "" {
		words = os.DirFS(o.options.CensoredWordsDir)
	}
	if words == nil {
		o.log.Info("Moderation disabled")
		return nil
	}

	data, err := NewCensoredLoader(words).LoadAll(".")
	if err != nil {
		return fmt.Errorf("loading censored words: %w", err)
	}
	o.log.Info(fmt.Sprintf("%d censored files loaded [%s]", len(data.Languages), strings.Join(data.Languages, ",")))
	o.log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))

	moderator, err := moderation.NewModerator(data.Words, o.options.CharReplacement, o.log)
	if err != nil {
		return err
	}
	o.dispatcher.WithModeration(moderator)
	return nil
}

// restoreHistory replays the newest archived events of every declared topic.
// Archived topics the relay no longer declares stay in the archive only.
func (o *Orchestrator) restoreHistory() error {
	if o.options.HistoryRestoreLimit <= 0 {
		return nil
	}
	var restored []domain.ChatEvent
	for _, topic := range o.router.Topics() {
		events, err := o.repository.GetEvents(topic, o.options.HistoryRestoreLimit)
		if err != nil {
			return fmt.Errorf("restoring history of %s: %w", topic, err)
		}
		restored = append(restored, events...)
	}
	sort.SliceStable(restored, func(i, j int) bool {
		return restored[i].Timestamp.Before(restored[j].Timestamp)
	})
	for _, evt := range restored {
		o.history.Append(evt)
	}
	o.log.Info(fmt.Sprintf("%d archived events restored", len(restored)), "topics", o.router.Topics())
	return nil
}

// Start runs the supervised workers and blocks until ctx is done or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) {
	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
}

func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}

// TopicsFor returns the topics a new session of the given role joins.
func (o *Orchestrator) TopicsFor(role domain.Role) []domain.TopicName {
	if role == domain.RoleSupport {
		return lo.Uniq(append(append([]domain.TopicName{}, o.options.DefaultTopics...), o.options.SupportTopics...))
	}
	return o.options.DefaultTopics
}

func (o *Orchestrator) Stats() domain.RelayStats {
	sessions := o.registry.Sessions()
	return domain.RelayStats{
		Sessions: len(sessions),
		Roles: lo.CountValuesBy(sessions, func(s domain.Session) domain.Role {
			return s.Role
		}),
		Connections: o.connections.Count(),
		Topics:      o.router.Topics(),
		History:     o.history.Len(),
	}
}

func (o *Orchestrator) Registry() contract.ISessionRegistry { return o.registry }

func (o *Orchestrator) Connections() contract.IConnections { return o.connections }

func (o *Orchestrator) Router() contract.ITopicRouter { return o.router }

func (o *Orchestrator) History() contract.IHistory { return o.history }

func (o *Orchestrator) Dispatcher() contract.IDispatcher { return o.dispatcher }
