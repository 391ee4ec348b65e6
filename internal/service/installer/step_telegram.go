package installer

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TelegramTokenStep collects the Telegram bot token. Empty disables the
// Telegram transport.
type TelegramTokenStep struct {
	input textinput.Model
}

func NewTelegramTokenStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "123456789:ABCDEF..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &TelegramTokenStep{
		input: ti,
	}
}

func (s *TelegramTokenStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *TelegramTokenStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		state.Answers.TelegramToken = strings.TrimSpace(s.input.Value())
		return nil, nil
	}
	return s, cmd
}

func (s *TelegramTokenStep) View(state *InstallState) string {
	return "Enter your Telegram Bot Token (empty to skip Telegram):\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}

// AdminChatStep collects the operator chat that receives leads and
// feedback. Skipped when Telegram is off.
type AdminChatStep struct {
	input textinput.Model
	err   string
}

func NewAdminChatStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.Placeholder = "123456789 or -100123456789"

	return &AdminChatStep{
		input: ti,
	}
}

func (s *AdminChatStep) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, next)
}

func (s *AdminChatStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.Answers.TelegramToken == "" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		id, err := parseChatID(s.input.Value())
		if err != nil {
			s.err = err.Error()
			return s, cmd
		}
		state.Answers.AdminChatID = id
		return nil, nil
	}
	return s, cmd
}

func (s *AdminChatStep) View(state *InstallState) string {
	view := "Enter the operator chat ID (empty to set later with /set_admin):\n\n" +
		s.input.View() + "\n\n"
	if s.err != "" {
		view += errorStyle.Render(s.err) + "\n\n"
	}
	return view + "(press enter to confirm)\n"
}

// parseChatID accepts an empty string as "not configured".
func parseChatID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidChatID
	}
	return id, nil
}
