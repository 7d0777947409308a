package gateway

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/sink"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// pollConn is a long-polling connection: a session plus a queue the client
// empties with repeated GET requests.
type pollConn struct {
	link     *Link
	peer     *sink.BufferedSink
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func (p *pollConn) touch(now time.Time) {
	p.mu.Lock()
	p.lastSeen = now
	p.mu.Unlock()
}

func (p *pollConn) idleSince(now time.Time) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return now.Sub(p.lastSeen)
}

type pollResponse struct {
	Handle domain.ConnectionHandle `json:"handle,omitempty"`
	Frames []domain.Outbound       `json:"frames"`
}

// LongPollTransport is the fallback for clients that cannot keep a WebSocket open.
type LongPollTransport struct {
	mu       sync.Mutex
	log      *slog.Logger
	gateway  *Gateway
	settings Settings
	conns    map[domain.ConnectionHandle]*pollConn
}

func NewLongPollTransport(log *slog.Logger, gateway *Gateway, settings Settings) *LongPollTransport {
	return &LongPollTransport{
		log:      log,
		gateway:  gateway,
		settings: settings,
		conns:    make(map[domain.ConnectionHandle]*pollConn),
	}
}

// Open handles POST /poll with a connect frame as body.
func (t *LongPollTransport) Open(c *gin.Context) {
	raw, err := t.readBody(c)
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, domain.Failure(err))
		return
	}
	hs, role, err := domain.DecodeHandshake(raw)
	if err != nil {
		t.log.Warn("Handshake rejected", "remote", c.ClientIP(), "error", err)
		c.JSON(http.StatusBadRequest, domain.Failure(err))
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	handle := domain.NewConnectionHandle("poll")
	peer := sink.NewBufferedSink(t.settings.BufferSize)
	link, err := t.gateway.Accept(ctx, handle, peer, hs, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, domain.Failure(err))
		return
	}

	conn := &pollConn{link: link, peer: peer, limiter: t.settings.newLimiter(), lastSeen: time.Now()}
	t.mu.Lock()
	t.conns[handle] = conn
	t.mu.Unlock()

	c.JSON(http.StatusOK, pollResponse{Handle: handle, Frames: peer.Drain()})
}

// Receive handles GET /poll/:handle. It answers as soon as a frame is queued
// or after PollWait with an empty list.
func (t *LongPollTransport) Receive(c *gin.Context) {
	conn, ok := t.lookup(c)
	if !ok {
		return
	}
	conn.touch(time.Now())
	defer conn.touch(time.Now())

	timer := time.NewTimer(t.settings.PollWait)
	defer timer.Stop()

	var frames []domain.Outbound
	select {
	case frame := <-conn.peer.Frames():
		frames = append([]domain.Outbound{frame}, conn.peer.Drain()...)
	case <-conn.peer.Done():
		frames = conn.peer.Drain()
		t.close(context.WithoutCancel(c.Request.Context()), conn)
		if len(frames) == 0 {
			c.JSON(http.StatusGone, domain.Failure(errors.ErrPeerClosed))
			return
		}
	case <-timer.C:
	case <-c.Request.Context().Done():
		return
	}
	if frames == nil {
		frames = []domain.Outbound{}
	}
	c.JSON(http.StatusOK, pollResponse{Frames: frames})
}

// Send handles POST /poll/:handle with one inbound frame as body.
func (t *LongPollTransport) Send(c *gin.Context) {
	conn, ok := t.lookup(c)
	if !ok {
		return
	}
	conn.touch(time.Now())
	ctx := context.WithoutCancel(c.Request.Context())

	raw, err := t.readBody(c)
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, domain.Failure(err))
		return
	}
	if !conn.limiter.Allow() {
		c.JSON(http.StatusTooManyRequests, domain.Failure(errors.ErrRateLimited))
		return
	}

	outcome, err := t.gateway.Inbound(ctx, conn.link, raw)
	switch {
	case errors.Is(err, errors.ErrUnknownSession):
		t.close(ctx, conn)
		c.JSON(http.StatusGone, domain.Failure(err))
	case err != nil:
		if t.gateway.ExceedsDecodeBudget(conn.link, err) {
			t.close(ctx, conn)
		}
		c.JSON(http.StatusBadRequest, domain.Failure(err))
	case outcome.Left:
		t.close(ctx, conn)
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusAccepted, gin.H{"delivered": outcome.Delivered})
	}
}

// Leave handles DELETE /poll/:handle, the long-poll equivalent of closing the socket.
func (t *LongPollTransport) Leave(c *gin.Context) {
	conn, ok := t.lookup(c)
	if !ok {
		return
	}
	t.close(context.WithoutCancel(c.Request.Context()), conn)
	c.Status(http.StatusNoContent)
}

// Reap disconnects connections idle for longer than PollIdleTimeout or
// closed by the router.
func (t *LongPollTransport) Reap(ctx context.Context, now time.Time) int {
	t.mu.Lock()
	var expired []*pollConn
	for _, conn := range t.conns {
		select {
		case <-conn.peer.Done():
			expired = append(expired, conn)
			continue
		default:
		}
		if conn.idleSince(now) > t.settings.PollIdleTimeout {
			expired = append(expired, conn)
		}
	}
	t.mu.Unlock()

	for _, conn := range expired {
		t.log.Info("Reaping long-poll connection", "handle", conn.link.Handle)
		t.close(ctx, conn)
	}
	return len(expired)
}

// CloseAll disconnects every long-poll connection, announcing each LEAVE.
// Used at shutdown, once the reaper is no longer guaranteed to run.
func (t *LongPollTransport) CloseAll(ctx context.Context) int {
	t.mu.Lock()
	conns := make([]*pollConn, 0, len(t.conns))
	for _, conn := range t.conns {
		conns = append(conns, conn)
	}
	t.mu.Unlock()

	for _, conn := range conns {
		t.close(ctx, conn)
	}
	return len(conns)
}

func (t *LongPollTransport) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.conns)
}

func (t *LongPollTransport) lookup(c *gin.Context) (*pollConn, bool) {
	handle := domain.ConnectionHandle(c.Param("handle"))
	t.mu.Lock()
	conn, ok := t.conns[handle]
	t.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, domain.Failure(errors.ErrUnknownConnection))
	}
	return conn, ok
}

func (t *LongPollTransport) close(ctx context.Context, conn *pollConn) {
	t.mu.Lock()
	delete(t.conns, conn.link.Handle)
	t.mu.Unlock()

	t.gateway.Disconnect(ctx, conn.link)
	conn.peer.Close()
}

func (t *LongPollTransport) readBody(c *gin.Context) ([]byte, error) {
	if t.settings.MaxMessageSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, t.settings.MaxMessageSize)
	}
	return io.ReadAll(c.Request.Body)
}
