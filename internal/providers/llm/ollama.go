package llm

// NewOllama uses Ollama's OpenAI-compatible API. The key is optional and
// only sent when set, e.g. behind an authenticating proxy.
func NewOllama(baseURL, apiKey, model string) *OpenAICompatible {
	return NewOpenAICompatible(OpenAICompatibleConfig{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		AuthHeader: "Authorization",
		AuthPrefix: "Bearer ",
	})
}
