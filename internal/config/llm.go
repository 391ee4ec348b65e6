package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/pkg/log"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderAnthropic  = "anthropic"
	ProviderCustom     = "custom"
)

// base URLs without the /v1 suffix, the providers add it themselves
var providerBaseURLs = map[string]string{
	ProviderGroq:       "https://api.groq.com/openai",
	ProviderOpenAI:     "https://api.openai.com",
	ProviderOpenRouter: "https://openrouter.ai/api",
	ProviderOllama:     "http://localhost:11434",
	ProviderAnthropic:  "https://api.anthropic.com",
}

type LLMConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"groq"`
	APIKey   string `env:"LLM_API_KEY"`
	BaseURL  string `env:"LLM_BASE_URL"`
	Model    string `env:"LLM_MODEL" envDefault:"llama-3.1-8b-instant"`

	Temperature float64 `env:"LLM_TEMPERATURE" envDefault:"0.6"`
	MaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"1024"`
	TopP        float64 `env:"LLM_TOP_P" envDefault:"1.0"`

	Stream bool `env:"LLM_STREAM" envDefault:"false"`
}

// llmFile is the optional llm.yaml overlay. Zero values leave env settings untouched.
type llmFile struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TopP        float64 `yaml:"top_p"`
}

func NewLLMConfig(ctx context.Context, overlayPath string) *LLMConfig {
	logger := log.FromCtx(ctx)

	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		logger.Fatal().Err(err).Msg("failed to parse LLM config")
	}

	if err := c.ApplyOverlay(overlayPath); err != nil {
		logger.Warn().Err(err).Str("path", overlayPath).Msg("ignoring llm overlay")
	}
	return c
}

// ApplyOverlay merges llm.yaml into c. A missing file is not an error.
func (c *LLMConfig) ApplyOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read overlay: %w", err)
	}

	var f llmFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse overlay: %w", err)
	}

	if f.Model != "" {
		c.Model = f.Model
	}
	if f.Temperature != 0 {
		c.Temperature = f.Temperature
	}
	if f.MaxTokens != 0 {
		c.MaxTokens = f.MaxTokens
	}
	if f.TopP != 0 {
		c.TopP = f.TopP
	}
	return nil
}

func (c LLMConfig) GetBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return providerBaseURLs[c.Provider]
}

func (c LLMConfig) Params() core.CompletionParams {
	return core.CompletionParams{
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		TopP:        c.TopP,
	}
}
