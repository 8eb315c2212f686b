package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, configValidator.Struct(cfg))

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 20*time.Second, cfg.Collectors.LiteratureTimeout())
	assert.Equal(t, 15*time.Second, cfg.Collectors.TableTimeout())
	assert.False(t, cfg.Narrative.Enabled())
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		errMsg  string
		verify  func(t *testing.T, cfg Config)
	}{
		{
			name: "overrides merge over defaults",
			yaml: `
server:
  address: ":9090"
collectors:
  trials_timeout_seconds: 45
logging:
  level: "debug"
`,
			verify: func(t *testing.T, cfg Config) {
				assert.Equal(t, ":9090", cfg.Server.Address)
				assert.Equal(t, 45*time.Second, cfg.Collectors.TrialsTimeout())
				assert.Equal(t, "debug", cfg.Logging.Level)
				// Untouched settings keep their defaults.
				assert.Equal(t, 20*time.Second, cfg.Collectors.LiteratureTimeout())
				assert.Equal(t, "data/medicine_dataset.csv", cfg.Reference.Path)
			},
		},
		{
			name: "narrative key enables narration",
			yaml: `
narrative:
  api_key: "sk-test"
  model: "gpt-4o"
`,
			verify: func(t *testing.T, cfg Config) {
				assert.True(t, cfg.Narrative.Enabled())
				assert.Equal(t, "gpt-4o", cfg.Narrative.Model)
			},
		},
		{
			name: "unknown fields are rejected",
			yaml: `
server:
  address: ":8080"
  listen_backlog: 128
`,
			wantErr: true,
			errMsg:  "parse config",
		},
		{
			name: "invalid log level fails validation",
			yaml: `
logging:
  level: "verbose"
`,
			wantErr: true,
			errMsg:  "validate config",
		},
		{
			name: "out of range timeout fails validation",
			yaml: `
collectors:
  trials_timeout_seconds: 10000
`,
			wantErr: true,
			errMsg:  "validate config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseConfig([]byte(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
