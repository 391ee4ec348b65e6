package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sandevgo/deskbot/internal/core"
)

const anthropicVersion = "2023-06-01"

type Anthropic struct {
	baseProvider
}

func NewAnthropic(baseURL, apiKey, model string) *Anthropic {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	return &Anthropic{
		baseProvider: newBaseProvider(strings.TrimRight(baseURL, "/"), apiKey, model),
	}
}

// Complete sends the conversation to the Messages API. System turns inside
// the conversation are folded into the top-level system field.
func (a *Anthropic) Complete(ctx context.Context, system string, turns []core.Turn, params core.CompletionParams) (string, error) {
	systems := []string{system}
	messages := make([]chatMessage, 0, len(turns))
	for _, t := range turns {
		if t.Role == core.RoleSystem {
			systems = append(systems, t.Content)
			continue
		}
		messages = append(messages, chatMessage{Role: t.Role, Content: t.Content})
	}

	maxTokens := params.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}
	payload := map[string]any{
		"model":      a.model,
		"max_tokens": maxTokens,
		"system":     strings.TrimSpace(strings.Join(systems, "\n\n")),
		"messages":   messages,
	}
	if params.Temperature != 0 {
		payload["temperature"] = params.Temperature
	}
	if params.TopP != 0 && params.TopP != 1 {
		payload["top_p"] = params.TopP
	}

	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": anthropicVersion,
	}

	resp, err := a.doRequest(ctx, http.MethodPost, "/v1/messages", payload, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := readOK(resp)
	if err != nil {
		return "", err
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	var sb strings.Builder
	for _, c := range result.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	return sb.String(), nil
}
