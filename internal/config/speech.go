package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/deskbot/pkg/log"
)

type SpeechConfig struct {
	// BaseURL and APIKey fall back to the LLM endpoint when empty.
	BaseURL string `env:"SPEECH_BASE_URL"`
	APIKey  string `env:"SPEECH_API_KEY"`

	STTModel string `env:"STT_MODEL" envDefault:"whisper-large-v3-turbo"`
	TTSModel string `env:"TTS_MODEL" envDefault:"playai-tts"`
	Voice    string `env:"TTS_VOICE" envDefault:"Fritz-PlayAI"`
	Format   string `env:"TTS_FORMAT" envDefault:"wav"`

	FFmpegPath       string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`
	TranscodeWorkers int    `env:"TRANSCODE_WORKERS" envDefault:"2"`
}

func NewSpeechConfig(ctx context.Context, llm *LLMConfig) *SpeechConfig {
	c := &SpeechConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Speech config")
	}
	if c.BaseURL == "" {
		c.BaseURL = llm.GetBaseURL()
	}
	if c.APIKey == "" {
		c.APIKey = llm.APIKey
	}
	if c.TranscodeWorkers < 1 {
		c.TranscodeWorkers = 1
	}
	return c
}
