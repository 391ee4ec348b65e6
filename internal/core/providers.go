package core

import "context"

// Completer is a chat-completion backend.
type Completer interface {
	Complete(ctx context.Context, system string, turns []Turn, params CompletionParams) (string, error)
}

// Streamer is implemented by backends that can deliver a completion
// incrementally. onChunk is called in order; the full text is returned.
type Streamer interface {
	Stream(ctx context.Context, system string, turns []Turn, params CompletionParams, onChunk func(string)) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// Voice holds synthesis parameters. Rate is a speed multiplier (1 is neutral)
// and Pitch a relative shift (0 is neutral).
type Voice struct {
	ID    string
	Rate  float64
	Pitch float64
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice Voice) ([]byte, error)
}
