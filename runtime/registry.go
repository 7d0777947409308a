package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

var _ contract.ISessionRegistry = (*Registry)(nil)

// Registry is the keyed store of live sessions.
// It owns Session records exclusively; transports only hold a SessionID.
type Registry struct {
	mu       sync.RWMutex
	log      *slog.Logger
	sessions map[domain.SessionID]*domain.Session
	byHandle map[domain.ConnectionHandle]domain.SessionID
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:      log,
		sessions: make(map[domain.SessionID]*domain.Session),
		byHandle: make(map[domain.ConnectionHandle]domain.SessionID),
	}
}

// Register always succeeds and never checks username uniqueness.
// A handle maps to at most one live session: registering a handle that is
// already bound replaces the previous session.
func (r *Registry) Register(handle domain.ConnectionHandle, username string, role domain.Role) domain.SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	if previous, ok := r.byHandle[handle]; ok {
		delete(r.sessions, previous)
		r.log.Warn("Connection handle reused, previous session replaced",
			"handle", handle, "session_id", previous)
	}

	id := domain.NewSessionID()
	r.sessions[id] = &domain.Session{
		ID:       id,
		Username: username,
		Handle:   handle,
		Role:     role,
		Online:   true,
	}
	r.byHandle[handle] = id
	return id
}

// Deregister is idempotent: unknown ids are ignored.
func (r *Registry) Deregister(id domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return
	}
	session.Online = false
	delete(r.sessions, id)
	if r.byHandle[session.Handle] == id {
		delete(r.byHandle, session.Handle)
	}
}

// Lookup returns a copy so callers never mutate the registry behind its lock.
func (r *Registry) Lookup(id domain.SessionID) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, false
	}
	return *session, true
}

func (r *Registry) SetUsername(id domain.SessionID, username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return false
	}
	session.Username = username
	return true
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) Sessions() []domain.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.MapToSlice(r.sessions, func(_ domain.SessionID, s *domain.Session) domain.Session {
		return *s
	})
}
