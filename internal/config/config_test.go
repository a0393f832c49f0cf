package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5101", cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 0.61, cfg.Grading.Threshold)
	assert.Equal(t, DefaultQuestions, cfg.Grading.Questions)
	assert.Equal(t, 24*time.Hour, cfg.Conversation.TTL)
	assert.Equal(t, "memory", cfg.Listings.Source)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: "9000"
  mode: debug
ai:
  provider: openai
  model: gpt-4o-mini
  timeout: 5s
grading:
  threshold: 0.7
  questions:
    - "Are pets allowed?"
    - "Is there parking?"
conversation:
  ttl: 2h
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 0.7, cfg.Grading.Threshold)
	assert.Equal(t, []string{"Are pets allowed?", "Is there parking?"}, cfg.Grading.Questions)
	assert.Equal(t, 2*time.Hour, cfg.Conversation.TTL)
	assert.NotEmpty(t, cfg.ConfigFile)
}

func TestValidate(t *testing.T) {
	base := Config{
		Server:   ServerConfig{Mode: "debug"},
		Grading:  GradingConfig{Threshold: 0.61},
		Listings: ListingsConfig{Source: "memory"},
	}
	assert.NoError(t, base.Validate())

	bad := base
	bad.Grading.Threshold = 1.5
	assert.Error(t, bad.Validate())

	bad = base
	bad.Listings.Source = "mongo"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Server.Mode = "release"
	assert.Error(t, bad.Validate())
}

func TestKeyForPicksProviderKey(t *testing.T) {
	ai := AIConfig{GeminiAPIKey: "g-key", OpenAIAPIKey: "o-key"}
	assert.Equal(t, "g-key", ai.KeyFor("gemini"))
	assert.Equal(t, "o-key", ai.KeyFor("OpenAI"))

	ai = AIConfig{APIKey: "shared", GeminiAPIKey: "g-key"}
	assert.Equal(t, "shared", ai.KeyFor("openai"))
}

func TestLoadConfigBindsKeysPerProvider(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.AI.KeyFor("gemini"))
	assert.Equal(t, "o-key", cfg.AI.KeyFor("openai"))
}

func TestValidateReleaseNeedsKeyForProvider(t *testing.T) {
	cfg := Config{
		Server:   ServerConfig{Mode: "release"},
		AI:       AIConfig{Provider: "openai", GeminiAPIKey: "g-key"},
		Grading:  GradingConfig{Threshold: 0.61},
		Listings: ListingsConfig{Source: "memory"},
	}
	assert.Error(t, cfg.Validate())

	cfg.AI.OpenAIAPIKey = "o-key"
	assert.NoError(t, cfg.Validate())
}
