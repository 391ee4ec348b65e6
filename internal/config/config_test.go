package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	t.Setenv("DESK_RUNTIME_PATH", t.TempDir())

	cfg := NewAppConfig(context.Background())

	assert.Equal(t, 4, cfg.HistorySize)
	assert.Equal(t, 2, cfg.RateLimit)
	assert.Equal(t, 3*time.Second, cfg.RateWindow)
	assert.Equal(t, 60*time.Second, cfg.BackendTimeout)
	assert.False(t, cfg.UseRedisContacts())
	assert.Equal(t, filepath.Join(cfg.RuntimePath, "deskbot.db"), cfg.GetDatabasePath())
}

func TestNewAppConfig_Overrides(t *testing.T) {
	t.Setenv("DESK_RUNTIME_PATH", t.TempDir())
	t.Setenv("HISTORY_SIZE", "10")
	t.Setenv("RATE_WINDOW", "5s")
	t.Setenv("CONTACT_STORE", "redis")

	cfg := NewAppConfig(context.Background())

	assert.Equal(t, 10, cfg.HistorySize)
	assert.Equal(t, 5*time.Second, cfg.RateWindow)
	assert.True(t, cfg.UseRedisContacts())
}

func TestResolveRuntimePath(t *testing.T) {
	abs := t.TempDir()
	assert.Equal(t, abs, resolveRuntimePath(abs))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".deskbot"), resolveRuntimePath(""))
}

func TestLLMConfig_Defaults(t *testing.T) {
	cfg := NewLLMConfig(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, ProviderGroq, cfg.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Model)
	assert.Equal(t, "https://api.groq.com/openai", cfg.GetBaseURL())
	assert.Equal(t, core.CompletionParams{Temperature: 0.6, MaxTokens: 1024, TopP: 1.0}, cfg.Params())
}

func TestLLMConfig_ApplyOverlay(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    core.CompletionParams
		model   string
		wantErr bool
	}{
		{
			name:    "partial overlay keeps env values",
			content: "temperature: 0.2\n",
			want:    core.CompletionParams{Temperature: 0.2, MaxTokens: 1024, TopP: 1.0},
			model:   "llama-3.1-8b-instant",
		},
		{
			name:    "full overlay",
			content: "model: llama-3.3-70b-versatile\ntemperature: 0.9\nmax_tokens: 512\ntop_p: 0.8\n",
			want:    core.CompletionParams{Temperature: 0.9, MaxTokens: 512, TopP: 0.8},
			model:   "llama-3.3-70b-versatile",
		},
		{
			name:    "broken yaml",
			content: "temperature: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "llm.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			cfg := &LLMConfig{Model: "llama-3.1-8b-instant", Temperature: 0.6, MaxTokens: 1024, TopP: 1.0}
			err := cfg.ApplyOverlay(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Params())
			assert.Equal(t, tt.model, cfg.Model)
		})
	}
}

func TestSpeechConfig_FallsBackToLLM(t *testing.T) {
	llm := &LLMConfig{Provider: ProviderGroq, APIKey: "gsk-test"}
	cfg := NewSpeechConfig(context.Background(), llm)

	assert.Equal(t, "https://api.groq.com/openai", cfg.BaseURL)
	assert.Equal(t, "gsk-test", cfg.APIKey)
	assert.Equal(t, "whisper-large-v3-turbo", cfg.STTModel)
	assert.GreaterOrEqual(t, cfg.TranscodeWorkers, 1)
}
