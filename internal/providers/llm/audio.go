package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
)

// Speech is the OpenAI-compatible audio API: Whisper-style transcription
// and text-to-speech.
type Speech struct {
	*OpenAICompatible
	sttModel string
	ttsModel string
	format   string
}

type SpeechOptions struct {
	STTModel string
	TTSModel string
	// Format is the response container requested from the speech endpoint.
	Format string
}

func NewSpeech(api *OpenAICompatible, opts SpeechOptions) *Speech {
	if opts.Format == "" {
		opts.Format = "wav"
	}
	return &Speech{
		OpenAICompatible: api,
		sttModel:         opts.STTModel,
		ttsModel:         opts.TTSModel,
		format:           opts.Format,
	}
}

func (s *Speech) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	fields := map[string]string{
		"model":           s.sttModel,
		"response_format": "json",
	}

	resp, err := s.doMultipart(ctx, "/v1/audio/transcriptions", fields, "file", filename, audio, s.headers())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := readOK(resp)
	if err != nil {
		return "", err
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return strings.TrimSpace(result.Text), nil
}

func (s *Speech) Synthesize(ctx context.Context, text string, voice core.Voice) ([]byte, error) {
	payload := map[string]any{
		"model":           s.ttsModel,
		"input":           text,
		"voice":           voice.ID,
		"response_format": s.format,
	}
	if voice.Rate != 0 && voice.Rate != 1 {
		payload["speed"] = voice.Rate
	}

	resp, err := s.doRequest(ctx, http.MethodPost, "/v1/audio/speech", payload, s.headers())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := readOK(resp)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio response")
	}
	return data, nil
}
