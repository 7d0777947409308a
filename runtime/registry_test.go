package runtime

import (
	"chat-relay/domain"
	"log/slog"
	"sync"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Register_One_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logs.GetLoggerFromLevel(slog.LevelDebug))
	handle := domain.NewConnectionHandle("ws")

	// Given no session is registered
	req.Zero(registry.Count())

	// When a connection registers anonymously
	id := registry.Register(handle, "", domain.RoleCustomer)

	// Then the session exists and is online
	req.Equal(1, registry.Count())
	session, ok := registry.Lookup(id)
	req.True(ok)
	req.Equal(handle, session.Handle)
	req.Equal(domain.RoleCustomer, session.Role)
	req.Empty(session.Username)
	req.True(session.Online)
}

func TestRegistry_Register_Duplicate_Usernames_Allowed(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logs.GetLoggerFromLevel(slog.LevelDebug))

	// When two connections use the same username
	id1 := registry.Register(domain.NewConnectionHandle("ws"), "Alice", domain.RoleCustomer)
	id2 := registry.Register(domain.NewConnectionHandle("ws"), "Alice", domain.RoleSupport)

	// Then both sessions live side by side
	req.NotEqual(id1, id2)
	req.Equal(2, registry.Count())
}

func TestRegistry_Register_Same_Handle_Replaces_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logs.GetLoggerFromLevel(slog.LevelDebug))
	handle := domain.NewConnectionHandle("ws")

	// Given a session bound to a handle
	first := registry.Register(handle, "Alice", domain.RoleCustomer)

	// When the same handle registers again
	second := registry.Register(handle, "Bob", domain.RoleCustomer)

	// Then only the latest session is live
	req.Equal(1, registry.Count())
	_, ok := registry.Lookup(first)
	req.False(ok)
	session, ok := registry.Lookup(second)
	req.True(ok)
	req.Equal("Bob", session.Username)

	// And deregistering the stale id doesn't touch the live one
	registry.Deregister(first)
	req.Equal(1, registry.Count())
}

func TestRegistry_Deregister_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logs.GetLoggerFromLevel(slog.LevelDebug))
	id := registry.Register(domain.NewConnectionHandle("ws"), "Alice", domain.RoleCustomer)

	// When the session is deregistered twice
	registry.Deregister(id)
	registry.Deregister(id)

	// Then the end state equals a single call
	req.Zero(registry.Count())
	_, ok := registry.Lookup(id)
	req.False(ok)

	// And unknown ids are ignored
	registry.Deregister(domain.NewSessionID())
	req.Zero(registry.Count())
}

func TestRegistry_SetUsername(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logs.GetLoggerFromLevel(slog.LevelDebug))
	id := registry.Register(domain.NewConnectionHandle("ws"), "", domain.RoleCustomer)

	// When a join supplies the authoritative username
	req.True(registry.SetUsername(id, "Alice"))

	// Then the session identity is updated in place
	session, ok := registry.Lookup(id)
	req.True(ok)
	req.Equal("Alice", session.Username)

	// And unknown sessions are reported
	req.False(registry.SetUsername(domain.NewSessionID(), "Bob"))
}

func TestRegistry_Lookup_Returns_Copy(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logs.GetLoggerFromLevel(slog.LevelDebug))
	id := registry.Register(domain.NewConnectionHandle("ws"), "Alice", domain.RoleCustomer)

	session, _ := registry.Lookup(id)
	session.Username = "Mallory"

	stored, _ := registry.Lookup(id)
	req.Equal("Alice", stored.Username)
	req.Len(registry.Sessions(), 1)
}

func TestRegistry_Concurrent_Register_Deregister(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(logs.GetLoggerFromLevel(slog.LevelError))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := registry.Register(domain.NewConnectionHandle("ws"), "user", domain.RoleCustomer)
			registry.SetUsername(id, "renamed")
			registry.Deregister(id)
		}()
	}
	wg.Wait()

	req.Zero(registry.Count())
}
