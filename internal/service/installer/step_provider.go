package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/deskbot/internal/config"
)

type providerChoice struct {
	id    string
	label string
}

var providerChoices = []providerChoice{
	{config.ProviderGroq, "Groq (chat + voice)"},
	{config.ProviderOpenAI, "OpenAI (chat + voice)"},
	{config.ProviderOpenRouter, "OpenRouter"},
	{config.ProviderAnthropic, "Anthropic"},
	{config.ProviderOllama, "Ollama (local)"},
	{config.ProviderCustom, "Custom OpenAI-compatible endpoint"},
}

// ProviderStep allows selection of the chat backend
type ProviderStep struct {
	cursor int
}

func NewProviderStep() Step {
	return &ProviderStep{}
}

func (s *ProviderStep) Init() tea.Cmd {
	return nil
}

func (s *ProviderStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(providerChoices)-1 {
				s.cursor++
			}
		case "enter":
			state.Answers.Provider = providerChoices[s.cursor].id
			return nil, nil
		}
	}
	return s, nil
}

func (s *ProviderStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString("Select your LLM provider:\n\n")
	for i, choice := range providerChoices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", choice.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", choice.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
