package registry

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config for the official practitioner directory client, read from the
// environment (REGISTRY_BASE_URL etc).
type Config struct {
	BaseURL     string        `envconfig:"BASE_URL" required:"true"`
	APIKey      string        `envconfig:"API_KEY"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"5s"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"10m"`
	MaxFailures int           `envconfig:"MAX_FAILURES" default:"5"`
	Cooldown    time.Duration `envconfig:"COOLDOWN" default:"30s"`
}

func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("REGISTRY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load registry config: %w", err)
	}
	return &cfg, nil
}
