package installer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/deskbot/internal/config"
)

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.id }

// suggestedModels lists known-good chat models per provider. The first one
// is the default.
func suggestedModels(provider string) []item {
	switch provider {
	case config.ProviderGroq:
		return []item{
			{id: "llama-3.1-8b-instant", title: "Llama 3.1 8B Instant", desc: "fast, cheap"},
			{id: "llama-3.3-70b-versatile", title: "Llama 3.3 70B Versatile", desc: "better Russian"},
		}
	case config.ProviderOpenAI:
		return []item{
			{id: "gpt-4o-mini", title: "GPT-4o mini", desc: "fast, cheap"},
			{id: "gpt-4o", title: "GPT-4o", desc: "best quality"},
		}
	case config.ProviderOpenRouter:
		return []item{
			{id: "meta-llama/llama-3.3-70b-instruct", title: "Llama 3.3 70B", desc: "open weights"},
			{id: "openai/gpt-4o-mini", title: "GPT-4o mini", desc: "via OpenRouter"},
		}
	case config.ProviderAnthropic:
		return []item{
			{id: "claude-3-5-haiku-latest", title: "Claude 3.5 Haiku", desc: "fast"},
			{id: "claude-3-5-sonnet-latest", title: "Claude 3.5 Sonnet", desc: "best quality"},
		}
	case config.ProviderOllama:
		return []item{
			{id: "llama3.1", title: "Llama 3.1", desc: "ollama pull llama3.1"},
			{id: "qwen2.5", title: "Qwen 2.5", desc: "ollama pull qwen2.5"},
		}
	}
	return []item{{id: "default", title: "Server default", desc: "model name sent as-is"}}
}

// ModelStep allows selection of the chat model
type ModelStep struct {
	list  list.Model
	ready bool
}

func NewModelStep() Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select chat model"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{list: l}
}

func (s *ModelStep) Init() tea.Cmd {
	return next
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		models := suggestedModels(state.Answers.Provider)
		items := make([]list.Item, 0, len(models))
		for _, m := range models {
			items = append(items, m)
		}
		s.list.SetItems(items)
		s.ready = true
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		wasFiltering := s.list.FilterState() == list.Filtering
		s.list, cmd = s.list.Update(msg)

		if wasFiltering || s.list.FilterState() == list.Filtering {
			return s, cmd
		}

		if i, ok := s.list.SelectedItem().(item); ok {
			state.Answers.Model = i.id
			return nil, nil
		}
		return s, cmd
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if !s.ready {
		return "Loading models...\n"
	}
	return s.list.View() + fmt.Sprintf("\nProvider: %s\n", state.Answers.Provider)
}
