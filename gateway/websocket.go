package gateway

import (
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/sink"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocketTransport serves the native bidirectional endpoint.
// The first text frame must be a connect frame; everything after it is
// bridged to the gateway until either side closes.
type WebSocketTransport struct {
	log      *slog.Logger
	gateway  *Gateway
	settings Settings
	upgrader websocket.Upgrader
	active   sync.WaitGroup
}

func NewWebSocketTransport(log *slog.Logger, gateway *Gateway, settings Settings, origins OriginPolicy) *WebSocketTransport {
	return &WebSocketTransport{
		log:      log,
		gateway:  gateway,
		settings: settings,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.CheckOrigin,
		},
	}
}

func (t *WebSocketTransport) Handle(c *gin.Context) {
	t.ServeHTTP(c.Writer, c.Request)
}

// Wait blocks until every connection served so far has run its disconnect
// path, or until ctx is done. http.Server.Shutdown does not track hijacked
// connections.
func (t *WebSocketTransport) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.active.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *WebSocketTransport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Counted before the upgrade, while the server still tracks the request.
	t.active.Add(1)
	defer t.active.Done()

	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.log.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer t.closeConn(conn)

	conn.SetReadLimit(t.settings.MaxMessageSize)
	hs, role, err := t.handshake(conn)
	if err != nil {
		t.log.Warn("Handshake rejected", "remote", r.RemoteAddr, "error", err)
		t.writeClose(conn, websocket.CloseProtocolError, err.Error())
		return
	}

	// The request context is not cancelled while a hijacked connection lives.
	ctx := context.WithoutCancel(r.Context())
	peer := sink.NewBufferedSink(t.settings.BufferSize)
	link, err := t.gateway.Accept(ctx, domain.NewConnectionHandle("ws"), peer, hs, role)
	if err != nil {
		t.log.Error("Accept failed", "remote", r.RemoteAddr, "error", err)
		t.writeClose(conn, websocket.CloseInternalServerErr, "")
		return
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		t.writePump(conn, peer)
	}()

	t.readPump(ctx, conn, link)

	t.gateway.Disconnect(ctx, link)
	peer.Close()
	<-writerDone
}

func (t *WebSocketTransport) handshake(conn *websocket.Conn) (domain.Handshake, domain.Role, error) {
	if err := conn.SetReadDeadline(time.Now().Add(t.settings.HandshakeTimeout)); err != nil {
		return domain.Handshake{}, "", err
	}
	messageType, raw, err := conn.ReadMessage()
	if err != nil {
		return domain.Handshake{}, "", fmt.Errorf("%w: %v", errors.ErrInvalidHandshake, err)
	}
	if messageType != websocket.TextMessage {
		return domain.Handshake{}, "", errors.ErrInvalidHandshake
	}
	return domain.DecodeHandshake(raw)
}

// readPump returns when the client goes away, the session is gone or the
// client sent too many malformed frames.
func (t *WebSocketTransport) readPump(ctx context.Context, conn *websocket.Conn, link *Link) {
	limiter := t.settings.newLimiter()
	_ = conn.SetReadDeadline(time.Now().Add(t.settings.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(t.settings.PongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			t.logReadError(link, err)
			return
		}

		if !limiter.Allow() {
			t.log.Warn("Rate limit exceeded, frame discarded", "handle", link.Handle)
			t.gateway.reject(ctx, link, errors.ErrRateLimited)
			continue
		}

		outcome, err := t.gateway.Inbound(ctx, link, raw)
		switch {
		case errors.Is(err, errors.ErrUnknownSession):
			return
		case err != nil:
			if t.gateway.ExceedsDecodeBudget(link, err) {
				t.log.Warn("Too many malformed frames, closing", "handle", link.Handle)
				t.writeClose(conn, websocket.CloseProtocolError, "too many malformed frames")
				return
			}
		case outcome.Left:
			t.writeClose(conn, websocket.CloseNormalClosure, "left")
			return
		}
	}
}

// writePump is the only writer of data frames on conn.
func (t *WebSocketTransport) writePump(conn *websocket.Conn, peer *sink.BufferedSink) {
	ticker := time.NewTicker(t.settings.PingPeriod)
	defer func() {
		ticker.Stop()
		t.closeConn(conn)
	}()

	for {
		select {
		case frame := <-peer.Frames():
			_ = conn.SetWriteDeadline(time.Now().Add(t.settings.WriteWait))
			if err := conn.WriteJSON(frame); err != nil {
				t.log.Debug("Write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(t.settings.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				t.log.Debug("Ping failed", "error", err)
				return
			}
		case <-peer.Done():
			t.writeClose(conn, websocket.CloseNormalClosure, "")
			return
		}
	}
}

// writeClose uses a control frame, which gorilla allows concurrently with
// the writer goroutine.
func (t *WebSocketTransport) writeClose(conn *websocket.Conn, code int, text string) {
	deadline := time.Now().Add(t.settings.WriteWait)
	err := conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
	if err != nil && !isExpectedCloseError(err) {
		t.log.Debug("Close frame not sent", "error", err)
	}
}

func (t *WebSocketTransport) closeConn(conn *websocket.Conn) {
	if err := conn.Close(); err != nil && !isExpectedCloseError(err) {
		t.log.Debug("Error closing connection", "error", err)
	}
}

func (t *WebSocketTransport) logReadError(link *Link, err error) {
	switch {
	case errors.Is(err, websocket.ErrReadLimit):
		t.log.Warn("Frame exceeded maximum size", "handle", link.Handle, "limit", t.settings.MaxMessageSize)
	case websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway),
		errors.Is(err, io.EOF), isExpectedCloseError(err):
		t.log.Debug("Client disconnected", "handle", link.Handle, "error", err)
	default:
		t.log.Info("WebSocket read error", "handle", link.Handle, "error", err)
	}
}

func isExpectedCloseError(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, websocket.ErrCloseSent)
}
