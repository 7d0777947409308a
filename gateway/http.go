package gateway

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatsSource interface {
	Stats() domain.RelayStats
}

type chatPage struct {
	Role     domain.Role        `json:"role"`
	Username string             `json:"username"`
	Topic    domain.TopicName   `json:"topic"`
	History  []domain.ChatEvent `json:"history"`
}

// NewEngine exposes the transports and the plain HTTP surface:
//
//	GET    /ws             WebSocket endpoint
//	POST   /poll           long-poll handshake
//	GET    /poll/:handle   long-poll receive
//	POST   /poll/:handle   long-poll send
//	DELETE /poll/:handle   long-poll leave
//	GET    /chat           page-render data (role, username, history)
//	GET    /health         liveness and counters
func NewEngine(log *slog.Logger, ws *WebSocketTransport, poll *LongPollTransport,
	history contract.IHistory, stats StatsSource, origins OriginPolicy) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), accessLog(log), cors(origins))

	r.GET("/ws", ws.Handle)

	r.POST("/poll", poll.Open)
	r.GET("/poll/:handle", poll.Receive)
	r.POST("/poll/:handle", poll.Send)
	r.DELETE("/poll/:handle", poll.Leave)

	r.GET("/chat", func(c *gin.Context) {
		role, ok := domain.ParseRole(c.DefaultQuery("role", string(domain.RoleCustomer)))
		if !ok {
			c.JSON(http.StatusBadRequest, domain.Failure(fmt.Errorf("unknown role %q", c.Query("role"))))
			return
		}
		topic, ok := domain.ParseTopic(c.Query("topic"))
		if !ok {
			c.JSON(http.StatusBadRequest, domain.Failure(fmt.Errorf("invalid topic %q", c.Query("topic"))))
			return
		}
		c.JSON(http.StatusOK, chatPage{
			Role:     role,
			Username: c.DefaultQuery("username", "Guest"),
			Topic:    topic,
			History:  history.SnapshotOf(topic),
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "stats": stats.Stats(), "long_poll": poll.Count()})
	})

	return r
}

// accessLog writes one line per request through the relay logger.
func accessLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"remote", c.ClientIP(),
			"duration", time.Since(start))
	}
}

// cors mirrors an allowed Origin back to the browser. The WebSocket endpoint
// enforces the same policy in its upgrader.
func cors(origins OriginPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if !origins.Allowed(origin) {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
