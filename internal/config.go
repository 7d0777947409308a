package internal

import (
	"chat-relay/domain"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	ConnectionBufferSize int   `env:"CONNECTION_BUFFER_SIZE,default=256"`
	MaxHistorySize       int   `env:"MAX_HISTORY_SIZE,default=0"`
	MaxMessageSize       int64 `env:"MAX_MESSAGE_SIZE,default=4096"`
	MaxContentLength     int   `env:"MAX_CONTENT_LENGTH,default=2000"`

	RateLimitBurst    int           `env:"RATE_LIMIT_BURST,default=10"`
	RateLimitInterval time.Duration `env:"RATE_LIMIT_INTERVAL,default=1s"`

	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT,default=10s"`
	PongWait         time.Duration `env:"PONG_WAIT,default=60s"`
	PingPeriod       time.Duration `env:"PING_PERIOD,default=54s"`
	WriteWait        time.Duration `env:"WRITE_WAIT,default=10s"`
	PollWait         time.Duration `env:"POLL_WAIT,default=25s"`
	PollIdleTimeout  time.Duration `env:"POLL_IDLE_TIMEOUT,default=60s"`

	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=*"`
	DefaultTopics  string `env:"DEFAULT_TOPICS,default=public"`
	SupportTopics  string `env:"SUPPORT_TOPICS,default=support"`

	ArchivePath         string `env:"ARCHIVE_PATH"`
	ArchiveBufferSize   int    `env:"ARCHIVE_BUFFER_SIZE,default=1024"`
	HistoryRestoreLimit int    `env:"HISTORY_RESTORE_LIMIT,default=0"`

	CensoredWordsDir string `env:"CENSORED_WORDS_DIR"`
	CharReplacement  string `env:"CHARACTER_REPLACEMENT,default=*"`

	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Validate checks the values go-env cannot express with tags.
func (c Config) Validate() error {
	if _, err := CharacterRune(c.CharReplacement); err != nil {
		return err
	}
	if c.ConnectionBufferSize <= 0 {
		return fmt.Errorf("CONNECTION_BUFFER_SIZE must be positive, got %d", c.ConnectionBufferSize)
	}
	if c.PingPeriod >= c.PongWait {
		return fmt.Errorf("PING_PERIOD (%s) must be shorter than PONG_WAIT (%s)", c.PingPeriod, c.PongWait)
	}
	if len(c.Topics()) == 0 {
		return fmt.Errorf("DEFAULT_TOPICS has no valid topic: %q", c.DefaultTopics)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) Topics() []domain.TopicName {
	return domain.ParseTopics(c.DefaultTopics)
}

func (c Config) Support() []domain.TopicName {
	return domain.ParseTopics(c.SupportTopics)
}

func (c Config) Origins() []string {
	return SplitList(c.AllowedOrigins)
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
