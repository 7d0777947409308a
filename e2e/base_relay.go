package e2e

import (
	"bytes"
	"chat-relay/domain"
	"chat-relay/gateway"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseRelaySuite struct {
	suite.Suite
	Config Config
	URL    string

	server  *httptest.Server
	stop    context.CancelFunc
	clients []*websocket.Conn
}

// SetupSuite loads the environment configuration and, unless RELAY_URL is
// set, starts a relay in-process with its default wiring.
func (s *BaseRelaySuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.RelayURL != "" {
		s.URL = strings.TrimSuffix(s.Config.RelayURL, "/")
		return
	}

	log := logs.GetLoggerFromLevel(slog.LevelInfo)
	orchestrator := runtime.NewOrchestrator(log, workers.NewSupervisor(log, 100*time.Millisecond), runtime.Options{
		MaxContentLen: 2000,
		DefaultTopics: []domain.TopicName{domain.DefaultTopic},
		SupportTopics: []domain.TopicName{"support"},
	})
	s.Require().NoError(orchestrator.Prepare())

	settings := gateway.Settings{
		BufferSize:       256,
		MaxMessageSize:   4096,
		HandshakeTimeout: 5 * time.Second,
		PongWait:         60 * time.Second,
		PingPeriod:       54 * time.Second,
		WriteWait:        10 * time.Second,
		PollWait:         time.Second,
		PollIdleTimeout:  time.Minute,
		RateBurst:        50,
		RateInterval:     time.Second,
		AllowedOrigins:   []string{"*"},
	}
	origins := gateway.NewOriginPolicy(log, settings.AllowedOrigins)
	gw := gateway.NewGateway(log, orchestrator.Registry(), orchestrator.Connections(), orchestrator.Router(),
		orchestrator.History(), orchestrator.Dispatcher(), orchestrator.TopicsFor)
	ws := gateway.NewWebSocketTransport(log, gw, settings, origins)
	poll := gateway.NewLongPollTransport(log, gw, settings)
	orchestrator.Add(gateway.NewPollReaper(poll, 10*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	go orchestrator.Start(ctx)
	s.stop = func() {
		orchestrator.Connections().CloseAll()
		waitCtx, cancelWait := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelWait()
		_ = ws.Wait(waitCtx)
		poll.CloseAll(context.Background())
		cancel()
	}
	s.server = httptest.NewServer(gateway.NewEngine(log, ws, poll, orchestrator.History(), orchestrator, origins))
	s.URL = s.server.URL
}

// TearDownTest closes the clients of the finished test, which lives longer
// than the steps that opened them.
func (s *BaseRelaySuite) TearDownTest() {
	for _, conn := range s.clients {
		_ = conn.Close()
	}
	s.clients = nil
}

func (s *BaseRelaySuite) TearDownSuite() {
	if s.stop != nil {
		s.stop()
	}
	if s.server != nil {
		s.server.Close()
	}
}

// Step prints a colorized header for one scenario step.
func (s *BaseRelaySuite) Step(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// Client is a WebSocket user of the suite.
type Client struct {
	s        *BaseRelaySuite
	name     string
	conn     *websocket.Conn
	Identity domain.Outbound
}

// Connect dials /ws and completes the handshake.
func (s *BaseRelaySuite) Connect(username string, role domain.Role) *Client {
	url := "ws" + strings.TrimPrefix(s.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err, "Failed to connect to relay at "+url)

	c := &Client{s: s, name: username, conn: conn}
	s.clients = append(s.clients, conn)
	c.Send(domain.SubjectConnect, "", domain.Handshake{Username: username, Role: string(role)})
	c.Identity = c.Next()
	s.Require().Equal(domain.OutboundConnected, c.Identity.Subject)
	return c
}

func (c *Client) Send(subject domain.Subject, topic string, payload any) {
	frame := map[string]any{"subject": subject, "payload": payload}
	if topic != "" {
		frame["topic"] = topic
	}
	c.s.Require().NoError(c.conn.WriteJSON(frame))
}

// Next returns the next frame, failing the test after five seconds.
func (c *Client) Next() domain.Outbound {
	var frame domain.Outbound
	c.s.Require().NoError(c.conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	c.s.Require().NoError(c.conn.ReadJSON(&frame), "%s is waiting for a frame", c.name)
	if c.s.Config.DebugJSON {
		raw, _ := json.MarshalIndent(frame, "", "  ")
		c.s.T().Logf("%s <- %s", c.name, raw)
	}
	return frame
}

// NextEvent skips frames until one carries an event of the given type.
func (c *Client) NextEvent(eventType domain.EventType) domain.ChatEvent {
	for {
		frame := c.Next()
		if frame.Event != nil && frame.Event.Type == eventType {
			return *frame.Event
		}
	}
}

// Drop closes the socket without a close frame.
func (c *Client) Drop() {
	_ = c.conn.Close()
}

// PollOpen performs the long-poll handshake and returns the handle.
func (s *BaseRelaySuite) PollOpen(username string) domain.ConnectionHandle {
	var opened struct {
		Handle domain.ConnectionHandle `json:"handle"`
	}
	status := s.postJSON("/poll", map[string]any{
		"subject": domain.SubjectConnect,
		"payload": domain.Handshake{Username: username},
	}, &opened)
	s.Require().Equal(http.StatusOK, status)
	return opened.Handle
}

func (s *BaseRelaySuite) PollSend(handle domain.ConnectionHandle, subject domain.Subject, payload any) int {
	return s.postJSON("/poll/"+string(handle), map[string]any{"subject": subject, "payload": payload}, nil)
}

func (s *BaseRelaySuite) PollReceive(handle domain.ConnectionHandle) []domain.Outbound {
	response, err := http.Get(s.URL + "/poll/" + string(handle))
	s.Require().NoError(err)
	defer response.Body.Close()
	s.Require().Equal(http.StatusOK, response.StatusCode)

	var received struct {
		Frames []domain.Outbound `json:"frames"`
	}
	s.Require().NoError(json.NewDecoder(response.Body).Decode(&received))
	return received.Frames
}

func (s *BaseRelaySuite) postJSON(path string, body any, out any) int {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	response, err := http.Post(s.URL+path, "application/json", bytes.NewReader(raw))
	s.Require().NoError(err)
	defer response.Body.Close()
	if out != nil && response.StatusCode == http.StatusOK {
		s.Require().NoError(json.NewDecoder(response.Body).Decode(out))
	}
	return response.StatusCode
}
