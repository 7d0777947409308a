package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// RELAY_URL targets a running relay (http://host:port). When empty the
	// suite starts an in-process relay.
	RelayURL string `envconfig:"RELAY_URL"`
	// E2E_DEBUG_JSON dumps every frame received by the suite clients
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
