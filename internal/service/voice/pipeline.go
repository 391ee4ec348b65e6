package voice

import (
	"context"
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
	"github.com/sandevgo/deskbot/pkg/log"
)

// formats the transcription backend does not accept as-is
var needsConversion = map[string]bool{
	"ogg":  true,
	"oga":  true,
	"opus": true,
	"webm": true,
}

type Config struct {
	Voice string
	// Format is the container the synthesis backend returns.
	Format string
}

type Pipeline struct {
	stt        core.Transcriber
	tts        core.Synthesizer
	transcoder Transcoder
	cfg        Config
}

func NewPipeline(stt core.Transcriber, tts core.Synthesizer, transcoder Transcoder, cfg Config) *Pipeline {
	if cfg.Format == "" {
		cfg.Format = "wav"
	}
	return &Pipeline{
		stt:        stt,
		tts:        tts,
		transcoder: transcoder,
		cfg:        cfg,
	}
}

// TranscribeInbound returns the recognised text. ok is false when the
// backend failed or heard nothing.
func (p *Pipeline) TranscribeInbound(ctx context.Context, audio []byte, format string) (string, bool) {
	logger := log.FromCtx(ctx)
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = "ogg"
	}

	filename := "voice." + format
	if needsConversion[format] {
		wav, err := p.transcoder.ToWAV(ctx, audio, format)
		if err != nil {
			logger.Warn().Err(err).Str("format", format).Msg("audio conversion failed, sending original")
		} else {
			audio = wav
			filename = "voice.wav"
		}
	}

	text, err := p.stt.Transcribe(ctx, audio, filename)
	if err != nil {
		logger.Error().Err(err).Msg("transcription failed")
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return text, true
}

// SynthesizeOutbound voices text with prosody matching mood. ok is false
// when there is nothing to say or any step failed.
func (p *Pipeline) SynthesizeOutbound(ctx context.Context, text, mood string) ([]byte, bool) {
	logger := log.FromCtx(ctx)

	clean := SanitizeSpeech(text)
	if clean == "" {
		return nil, false
	}

	v := voiceFor(p.cfg.Voice, mood)
	audio, err := p.tts.Synthesize(ctx, clean, v)
	if err != nil {
		logger.Error().Err(err).Msg("speech synthesis failed")
		return nil, false
	}

	ogg, err := p.transcoder.ToVoice(ctx, audio, p.cfg.Format, v.Pitch)
	if err != nil {
		logger.Error().Err(err).Msg("voice transcoding failed")
		return nil, false
	}
	return ogg, true
}
