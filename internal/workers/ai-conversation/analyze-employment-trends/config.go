// internal/workers/ai-conversation/analyze-employment-trends/config.go
package analyzeemploymenttrends

import (
	"fmt"
	"time"

	"youth-employment-chat/internal/common/config"
)

// Window sizes of the most recent points sent to the model.
const (
	EmploymentWindow         = 10
	SalaryWindow             = 5
	UnemploymentWindow       = 5
	EmploymentDurationWindow = 5
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
		MaxJobsActive: 2,
		Timeout:       120 * time.Second,
		Model:         "gpt-4o-mini",
		MaxTokens:     2000,
		Temperature:   0.3,
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
	if llm.TrendModel != "" {
		c.Model = llm.TrendModel
	}
	if llm.MaxTokens > 0 {
		c.MaxTokens = llm.MaxTokens
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
	return nil
}
