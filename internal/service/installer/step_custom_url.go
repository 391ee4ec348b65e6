package installer

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/deskbot/internal/config"
)

// CustomURLStep asks for the base URL of a custom endpoint. Other
// providers skip it.
type CustomURLStep struct {
	input textinput.Model
	err   string
}

func NewCustomURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Placeholder = "https://llm.example.com"
	ti.Width = 50
	return &CustomURLStep{input: ti}
}

func (s *CustomURLStep) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, next)
}

func (s *CustomURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.Answers.Provider != config.ProviderCustom {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val, err := normalizeBaseURL(s.input.Value())
		if err != nil {
			s.err = err.Error()
			return s, cmd
		}
		state.Answers.BaseURL = val
		return nil, nil
	}
	return s, cmd
}

func (s *CustomURLStep) View(state *InstallState) string {
	view := "Enter the base URL (without /v1):\n\n" + s.input.View() + "\n\n"
	if s.err != "" {
		view += errorStyle.Render(s.err) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}

// normalizeBaseURL requires an absolute http(s) URL and strips a trailing
// /v1, which the providers append themselves.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", errInvalidURL
	}
	raw = strings.TrimRight(raw, "/")
	return strings.TrimSuffix(raw, "/v1"), nil
}
