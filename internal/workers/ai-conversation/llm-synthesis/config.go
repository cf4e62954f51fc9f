// internal/workers/ai-conversation/llm-synthesis/config.go
package llmsynthesis

import (
	"fmt"
	"time"

	"youth-employment-chat/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	Model         string
	MaxTokens     int
	Temperature   float64
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       90 * time.Second,
		Model:         "gpt-4.1",
		MaxTokens:     2000,
		Temperature:   0.1,
	}
}

func ConfigFromApp(wc config.WorkerConfig, llm config.LLMConfig) *Config {
	c := DefaultConfig()
	c.Enabled = wc.Enabled
	if wc.MaxJobsActive > 0 {
		c.MaxJobsActive = wc.MaxJobsActive
	}
	if wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	if llm.Model != "" {
		c.Model = llm.Model
	}
	if llm.MaxTokens > 0 {
		c.MaxTokens = llm.MaxTokens
	}
	if llm.Temperature > 0 {
		c.Temperature = llm.Temperature
	}
	return c
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	return nil
}
