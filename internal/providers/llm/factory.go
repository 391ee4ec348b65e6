package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/deskbot/internal/config"
	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/pkg/log"
)

// NewProvider creates the completion backend for cfg.Provider.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (core.Completer, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Bool("stream", cfg.Stream).
		Msg("starting llm provider")

	baseURL := cfg.GetBaseURL()
	switch cfg.Provider {
	case config.ProviderGroq:
		return NewGroq(baseURL, cfg.APIKey, cfg.Model), nil
	case config.ProviderOpenAI:
		return NewOpenAI(baseURL, cfg.APIKey, cfg.Model), nil
	case config.ProviderOpenRouter:
		return NewOpenRouter(baseURL, cfg.APIKey, cfg.Model), nil
	case config.ProviderOllama:
		return NewOllama(baseURL, cfg.APIKey, cfg.Model), nil
	case config.ProviderAnthropic:
		return NewAnthropic(baseURL, cfg.APIKey, cfg.Model), nil
	case config.ProviderCustom:
		if baseURL == "" {
			return nil, fmt.Errorf("custom provider requires LLM_BASE_URL")
		}
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

// NewSpeechProvider creates the transcription and synthesis backend.
func NewSpeechProvider(ctx context.Context, cfg *config.SpeechConfig) (*Speech, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("speech endpoint is not configured")
	}

	log.FromCtx(ctx).Info().
		Str("stt_model", cfg.STTModel).
		Str("tts_model", cfg.TTSModel).
		Str("voice", cfg.Voice).
		Msg("starting speech provider")

	api := NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})
	return NewSpeech(api, SpeechOptions{
		STTModel: cfg.STTModel,
		TTSModel: cfg.TTSModel,
		Format:   cfg.Format,
	}), nil
}
