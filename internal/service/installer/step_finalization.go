package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep computes derived values
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return next
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(&state.Answers)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(a *Answers) {
	if a.TelegramToken != "" {
		a.EnableTelegram = "true"
	} else {
		a.EnableTelegram = "false"
		a.AdminChatID = 0
	}

	if a.Debug == "" {
		a.Debug = "0"
	}
}
