// Command tester simulates a crowd of WebSocket users against a running relay.
package main

import (
	"chat-relay/domain"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	URL      string        `envconfig:"TESTER_URL" default:"ws://localhost:8080/ws"`
	Users    int           `envconfig:"TESTER_USERS" default:"10"`
	Messages int           `envconfig:"TESTER_MESSAGES" default:"20"`
	Interval time.Duration `envconfig:"TESTER_INTERVAL" default:"200ms"`
	Topic    string        `envconfig:"TESTER_TOPIC" default:"public"`
	Colours  bool          `envconfig:"TESTER_COLOURS" default:"true"`
}

type report struct {
	sent     atomic.Int64
	received atomic.Int64
	errors   atomic.Int64
}

func main() {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	header := fmt.Sprintf("  ====== %d users x %d messages on %s ======", cfg.Users, cfg.Messages, cfg.URL)
	if cfg.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	var r report
	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < cfg.Users; i++ {
		wg.Add(1)
		go func(username string) {
			defer wg.Done()
			if err := simulate(cfg, username, &r); err != nil {
				r.errors.Add(1)
				log.Printf("%s: %v", username, err)
			}
		}(fmt.Sprintf("user-%03d", i))
	}
	wg.Wait()

	// Every message reaches every user on the topic, its sender included,
	// provided all users were connected before the first message.
	expected := int64(cfg.Users) * int64(cfg.Users) * int64(cfg.Messages)
	summary := fmt.Sprintf("sent=%d received=%d expected=%d errors=%d in %s",
		r.sent.Load(), r.received.Load(), expected, r.errors.Load(), time.Since(start).Round(time.Millisecond))
	if cfg.Colours {
		style := color.New(color.FgGreen)
		if r.errors.Load() > 0 || r.received.Load() < expected {
			style = color.New(color.FgRed)
		}
		summary = style.Render(summary)
	}
	fmt.Println(summary)
}

func simulate(cfg Config, username string, r *report) error {
	conn, _, err := websocket.DefaultDialer.Dial(cfg.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.WriteJSON(map[string]any{
		"subject": domain.SubjectConnect,
		"payload": domain.Handshake{Username: username},
	}); err != nil {
		return err
	}

	if err := conn.WriteJSON(map[string]any{
		"subject": domain.SubjectAddUser,
		"topic":   cfg.Topic,
		"payload": domain.EventPayload{Sender: username, Type: domain.EventJoin},
	}); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var frame domain.Outbound
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			if frame.Event != nil && frame.Event.Type == domain.EventChat {
				r.received.Add(1)
			}
		}
	}()

	typing := func(subject domain.Subject) error {
		return conn.WriteJSON(map[string]any{
			"subject": subject,
			"topic":   cfg.Topic,
			"payload": domain.EventPayload{Sender: username},
		})
	}
	if err := typing(domain.SubjectTyping); err != nil {
		return err
	}
	for i := 0; i < cfg.Messages; i++ {
		err := conn.WriteJSON(map[string]any{
			"subject": domain.SubjectSendMessage,
			"topic":   cfg.Topic,
			"payload": domain.EventPayload{Sender: username, Content: fmt.Sprintf("message %d from %s", i, username)},
		})
		if err != nil {
			return err
		}
		r.sent.Add(1)
		time.Sleep(cfg.Interval)
	}

	if err := typing(domain.SubjectStopTyping); err != nil {
		return err
	}

	// Leave some time for the last broadcasts before leaving.
	time.Sleep(time.Second)
	_ = conn.WriteJSON(map[string]any{"subject": domain.SubjectLeave})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
	return nil
}
