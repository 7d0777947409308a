package e2e

import (
	"chat-relay/domain"
	"fmt"
	"net/http"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type testChatSuite struct {
	BaseRelaySuite
}

func TestChatSuite(t *testing.T) {
	suite.Run(t, &testChatSuite{})
}

func (s *testChatSuite) TestCustomerConversation() {
	// Unique names keep the scenario readable against a shared relay
	suffix := uuid.NewString()[:6]
	aliceName, bobName := "alice-"+suffix, "bob-"+suffix

	var alice, bob *Client

	s.Run("Step 1: Two customers connect", func() {
		s.Step(s.T(), "Handshake")
		alice = s.Connect(aliceName, domain.RoleCustomer)
		bob = s.Connect(bobName, domain.RoleCustomer)
		s.Require().Equal([]string{"public"}, alice.Identity.Session.Topics)
	})

	s.Run("Step 2: Both announce themselves", func() {
		s.Step(s.T(), "JOIN")
		alice.Send(domain.SubjectAddUser, "", domain.EventPayload{Sender: aliceName, Type: domain.EventJoin})
		join := bob.NextEvent(domain.EventJoin)
		s.Require().Equal(aliceName, join.Sender)
		s.Require().Equal(fmt.Sprintf("%s has joined", aliceName), join.Content)
	})

	s.Run("Step 3: A message reaches both", func() {
		s.Step(s.T(), "CHAT")
		alice.Send(domain.SubjectSendMessage, "/topic/public", domain.EventPayload{Content: "Hello"})
		for _, c := range []*Client{alice, bob} {
			evt := c.NextEvent(domain.EventChat)
			s.Require().Equal("Hello", evt.Content)
			s.Require().Equal(aliceName, evt.Sender)
			s.Require().False(evt.Timestamp.IsZero())
		}
	})

	s.Run("Step 4: Typing signals are relayed", func() {
		s.Step(s.T(), "TYPING")
		bob.Send(domain.SubjectTyping, "", domain.EventPayload{Sender: bobName})
		s.Require().Equal(bobName, alice.NextEvent(domain.EventTyping).Sender)
	})

	s.Run("Step 5: A dropped connection is announced", func() {
		s.Step(s.T(), "LEAVE")
		alice.Drop()
		leave := bob.NextEvent(domain.EventLeave)
		s.Require().Equal(aliceName, leave.Sender)
	})
}

func (s *testChatSuite) TestLongPollingJoinsTheConversation() {
	suffix := uuid.NewString()[:6]
	ws := s.Connect("ws-"+suffix, domain.RoleCustomer)

	s.Run("Step 1: Long-poll client talks to a WebSocket client", func() {
		s.Step(s.T(), "Long polling")
		handle := s.PollOpen("poll-" + suffix)
		s.Require().Equal(http.StatusAccepted, s.PollSend(handle, domain.SubjectSendMessage,
			domain.EventPayload{Content: "from long polling"}))
		s.Require().Equal("from long polling", ws.NextEvent(domain.EventChat).Content)

		ws.Send(domain.SubjectSendMessage, "", domain.EventPayload{Content: "from websocket"})
		var contents []string
		for attempt := 0; attempt < 3 && !slices.Contains(contents, "from websocket"); attempt++ {
			for _, frame := range s.PollReceive(handle) {
				if frame.Event != nil {
					contents = append(contents, frame.Event.Content)
				}
			}
		}
		s.Require().Contains(contents, "from websocket")
	})
}

func (s *testChatSuite) TestSupportAgentSeesBothTopics() {
	agent := s.Connect("agent-"+uuid.NewString()[:6], domain.RoleSupport)

	s.Require().Equal(domain.RoleSupport, agent.Identity.Session.Role)
	s.Require().Equal([]string{"public", "support"}, agent.Identity.Session.Topics)
}
