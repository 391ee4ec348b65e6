package llm

import "github.com/sandevgo/deskbot/internal/core"

func NewOpenRouter(baseURL, apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
		ExtraHeaders: map[string]string{
			"HTTP-Referer": core.DeskRepositoryURL,
			"X-Title":      core.DeskName,
		},
	})
}
