package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Mealforge", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)

	assert.Equal(t, "gpt-4", cfg.AI.Model)
	assert.Equal(t, 4000, cfg.AI.MaxTokens)
	assert.InDelta(t, 0.1, cfg.AI.PreciseTemperature, 0.001)
	assert.InDelta(t, 0.7, cfg.AI.CreativeTemperature, 0.001)
	assert.Equal(t, 120*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 3, cfg.AI.MaxRetries)

	assert.Equal(t, "https://api.tavily.com", cfg.Search.BaseURL)
	assert.Equal(t, 2, cfg.Search.MaxQueries)
	assert.Equal(t, 2, cfg.Search.MaxResults)
	assert.Equal(t, time.Hour, cfg.Search.CacheTTL)

	assert.Equal(t, 5*time.Minute, cfg.Workflow.RunTimeout)
	assert.Equal(t, 3, cfg.Workflow.MinInstructionSteps)
	assert.Equal(t, 30, cfg.Workflow.MinAvgStepLength)
	assert.Equal(t, 8, cfg.Workflow.MaxCookingTips)
}

func TestSearchEnabled(t *testing.T) {
	assert.False(t, SearchConfig{}.Enabled())
	assert.True(t, SearchConfig{APIKey: "key"}.Enabled())
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("MEALFORGE_AI_MODEL", "gpt-4o-mini")
	t.Setenv("MEALFORGE_SEARCH_API_KEY", "tvly-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.True(t, cfg.Search.Enabled())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing app name", func(t *testing.T) {
		cfg := base()
		cfg.App.Name = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires model api key", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "production"
		cfg.AI.APIKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("audit thresholds must stay sane", func(t *testing.T) {
		cfg := base()
		cfg.Workflow.MinInstructionSteps = 0
		assert.Error(t, cfg.Validate())
	})
}
