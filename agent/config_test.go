package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/anchorflow/types"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{ID: "a", Name: "a", Model: "gemini-2.0-flash", Temperature: 0.2}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"missing ID", func(c *Config) { c.ID = "" }, "agent ID is required"},
		{"missing name", func(c *Config) { c.Name = "" }, "agent name is required"},
		{"missing model", func(c *Config) { c.Model = "" }, "agent model is required"},
		{"temperature too low", func(c *Config) { c.Temperature = -0.1 }, "temperature"},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }, "temperature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, types.ErrInvalidRequest, types.GetErrorCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestDefaultOrchestrator(t *testing.T) {
	cfg := DefaultOrchestrator()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.InDelta(t, 0.2, cfg.Temperature, 0.001)
	assert.NotEmpty(t, cfg.Instruction)

	// The stock profile covers the pipeline tools but not the raw file
	// and key management surface.
	assert.Contains(t, cfg.Tools, "analyzer")
	assert.Contains(t, cfg.Tools, "infra")
	assert.Contains(t, cfg.Tools, "github_webhook_setup")
	assert.NotContains(t, cfg.Tools, "edit_file")
	assert.NotContains(t, cfg.Tools, "save_keys")
	assert.Len(t, cfg.Tools, 7)
}
