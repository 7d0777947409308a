package gateway

import (
	"time"

	"golang.org/x/time/rate"
)

// Settings are the transport limits shared by every connection.
type Settings struct {
	BufferSize       int
	MaxMessageSize   int64
	HandshakeTimeout time.Duration
	PongWait         time.Duration
	PingPeriod       time.Duration
	WriteWait        time.Duration
	PollWait         time.Duration
	PollIdleTimeout  time.Duration
	RateBurst        int
	RateInterval     time.Duration
	AllowedOrigins   []string
}

// newLimiter allows RateBurst frames per RateInterval, refilled continuously.
// A non positive burst disables limiting.
func (s Settings) newLimiter() *rate.Limiter {
	if s.RateBurst <= 0 || s.RateInterval <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Every(s.RateInterval/time.Duration(s.RateBurst)), s.RateBurst)
}
