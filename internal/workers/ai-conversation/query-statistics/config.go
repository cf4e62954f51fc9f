// internal/workers/ai-conversation/query-statistics/config.go
package querystatistics

import (
	"fmt"
	"time"

	"youth-employment-chat/internal/common/config"
)

const CacheKey = "ai:stats:fanout:v1"

type Config struct {
	Enabled        bool
	MaxJobsActive  int
	Timeout        time.Duration
	DatasetTimeout time.Duration // per store read
	CacheTTL       time.Duration // 0 disables the fan-out cache
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		MaxJobsActive:  5,
		Timeout:        30 * time.Second,
		DatasetTimeout: 5 * time.Second,
	}
}

func ConfigFromApp(wc config.WorkerConfig, chat config.ChatConfig) *Config {
	c := DefaultConfig()
	c.Enabled = wc.Enabled
	if wc.MaxJobsActive > 0 {
		c.MaxJobsActive = wc.MaxJobsActive
	}
	if wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	if d := chat.DatasetTimeoutDuration(); d > 0 {
		c.DatasetTimeout = d
	}
	c.CacheTTL = chat.CacheTTLDuration()
	return c
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.DatasetTimeout <= 0 {
		return fmt.Errorf("dataset timeout must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}
