package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/deskbot/internal/config"
	"github.com/sandevgo/deskbot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var params = core.CompletionParams{Temperature: 0.6, MaxTokens: 256, TopP: 1}

func TestOpenAICompatible_Complete(t *testing.T) {
	var got struct {
		Model       string        `json:"model"`
		Messages    []chatMessage `json:"messages"`
		Temperature float64       `json:"temperature"`
		MaxTokens   int           `json:"max_tokens"`
		Stream      bool          `json:"stream"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, core.DeskName, r.Header.Get("X-Title"))
		assert.Equal(t, core.DeskUserAgent, r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Привет!"}}]}`)
	}))
	defer srv.Close()

	p := NewOpenRouter(srv.URL, "secret", "m1")
	text, err := p.Complete(context.Background(), "SYS", []core.Turn{{Role: core.RoleUser, Content: "hi"}}, params)

	require.NoError(t, err)
	assert.Equal(t, "Привет!", text)
	assert.Equal(t, "m1", got.Model)
	assert.Equal(t, []chatMessage{{Role: "system", Content: "SYS"}, {Role: "user", Content: "hi"}}, got.Messages)
	assert.Equal(t, 0.6, got.Temperature)
	assert.Equal(t, 256, got.MaxTokens)
	assert.False(t, got.Stream)
}

func TestOpenAICompatible_CompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusTooManyRequests, body: `{"error":"rate"}`},
		{name: "empty choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "bad json", status: http.StatusOK, body: `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewGroq(srv.URL, "k", "m").Complete(context.Background(), "", nil, params)
			assert.Error(t, err)
		})
	}
}

func TestOpenAICompatible_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewOpenAI(srv.URL, "k", "m").Complete(context.Background(), "", nil, params)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestOpenAICompatible_Stream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["stream"])

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"При\"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"вет\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	var chunks []string
	text, err := NewOllama(srv.URL, "", "m").Stream(context.Background(), "", nil, params, func(c string) {
		chunks = append(chunks, c)
	})

	require.NoError(t, err)
	assert.Equal(t, "Привет", text)
	assert.Equal(t, []string{"При", "вет"}, chunks)
}

func TestOllama_NoKeyNoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	}))
	defer srv.Close()

	text, err := NewOllama(srv.URL+"/", "", "llama3").Complete(context.Background(), "", nil, params)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestAnthropic_Complete(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		fmt.Fprint(w, `{"content":[{"type":"text","text":"Hel"},{"type":"text","text":"lo"}]}`)
	}))
	defer srv.Close()

	turns := []core.Turn{
		{Role: core.RoleSystem, Content: "NOTE"},
		{Role: core.RoleUser, Content: "hi"},
	}
	text, err := NewAnthropic(srv.URL, "key", "claude").Complete(context.Background(), "SYS", turns, params)

	require.NoError(t, err)
	assert.Equal(t, "Hello", text)
	assert.Equal(t, "SYS\n\nNOTE", got["system"])
	messages, ok := got["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, messages, 1)
}

func TestSpeech_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, core.DeskUserAgent, r.Header.Get("User-Agent"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper", r.FormValue("model"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "voice.wav", hdr.Filename)
		assert.Equal(t, []byte("RIFF"), data)

		fmt.Fprint(w, `{"text":" сколько стоит бот? "}`)
	}))
	defer srv.Close()

	s := NewSpeech(NewGroq(srv.URL, "k", ""), SpeechOptions{STTModel: "whisper", TTSModel: "tts"})
	text, err := s.Transcribe(context.Background(), []byte("RIFF"), "voice.wav")

	require.NoError(t, err)
	assert.Equal(t, "сколько стоит бот?", text)
}

func TestSpeech_Synthesize(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("AUDIO"))
	}))
	defer srv.Close()

	s := NewSpeech(NewGroq(srv.URL, "k", ""), SpeechOptions{TTSModel: "tts"})
	audio, err := s.Synthesize(context.Background(), "Привет", core.Voice{ID: "Fritz", Rate: 1.1})

	require.NoError(t, err)
	assert.Equal(t, []byte("AUDIO"), audio)
	assert.Equal(t, "tts", got["model"])
	assert.Equal(t, "Fritz", got["voice"])
	assert.Equal(t, "wav", got["response_format"])
	assert.Equal(t, 1.1, got["speed"])
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	for _, name := range []string{config.ProviderGroq, config.ProviderOpenAI, config.ProviderOpenRouter, config.ProviderOllama, config.ProviderAnthropic} {
		p, err := NewProvider(ctx, &config.LLMConfig{Provider: name, Model: "m"})
		require.NoError(t, err, name)
		assert.NotNil(t, p, name)
	}

	_, err := NewProvider(ctx, &config.LLMConfig{Provider: config.ProviderCustom})
	assert.Error(t, err)

	_, err = NewProvider(ctx, &config.LLMConfig{Provider: "bogus"})
	assert.Error(t, err)

	p, err := NewProvider(ctx, &config.LLMConfig{Provider: config.ProviderGroq})
	require.NoError(t, err)
	_, streams := p.(core.Streamer)
	assert.True(t, streams)
}
