// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	path := writeConfig(t, `
apis:
  llm:
    api_key: sk-test
database:
  postgres:
    host: localhost
    database: kosis
    user: reader
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "gpt-4.1", cfg.APIs.LLM.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.APIs.LLM.TrendModel)
	assert.Equal(t, 2000, cfg.APIs.LLM.MaxTokens)
	assert.InDelta(t, 0.1, cfg.APIs.LLM.Temperature, 1e-9)
	assert.Equal(t, 500, cfg.Chat.MaxQuestionLength)
	assert.Equal(t, 5000, cfg.Chat.DatasetTimeout)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.False(t, cfg.Camunda.Enabled)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_LLM_KEY", "sk-from-env")
	path := writeConfig(t, `
apis:
  llm:
    api_key: ${TEST_LLM_KEY}
store:
  backend: elasticsearch
database:
  elasticsearch:
    addresses: ["http://es:9200"]
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.APIs.LLM.APIKey)
	assert.Equal(t, "http://es:9200", cfg.Database.Elasticsearch.GetURL())
}

func TestLoadFromFile_Validation(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing llm key",
			content: `
database:
  postgres: {host: h, database: d, user: u}
`,
			wantErr: "apis.llm.api_key is required",
		},
		{
			name: "missing postgres host",
			content: `
apis: {llm: {api_key: k}}
`,
			wantErr: "database.postgres.host is required",
		},
		{
			name: "missing elasticsearch address",
			content: `
apis: {llm: {api_key: k}}
store: {backend: elasticsearch}
`,
			wantErr: "database.elasticsearch.addresses or url is required",
		},
		{
			name: "unknown backend",
			content: `
apis: {llm: {api_key: k}}
store: {backend: sqlite}
`,
			wantErr: "store.backend must be",
		},
		{
			name: "camunda without broker",
			content: `
apis: {llm: {api_key: k}}
database:
  postgres: {host: h, database: d, user: u}
camunda: {enabled: true}
`,
			wantErr: "camunda.broker_address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_OpenAIKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	path := writeConfig(t, `
database:
  postgres: {host: h, database: d, user: u}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.APIs.LLM.APIKey)
}

func TestWorkerConfigFallback(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{
		"build-context": {Enabled: false, MaxJobsActive: 2},
	}}

	assert.False(t, IsWorkerEnabled(cfg, "build-context"))
	assert.True(t, IsWorkerEnabled(cfg, "classify-question"))
	assert.Equal(t, 5, GetWorkerConfig(cfg, "classify-question").MaxJobsActive)
	assert.Equal(t, 2, GetWorkerConfig(cfg, "build-context").MaxJobsActive)
}
