package installer

// Answers is what the wizard collects. Field tags are the variables
// config reads back at start.
type Answers struct {
	Provider string `env:"LLM_PROVIDER"`
	APIKey   string `env:"LLM_API_KEY"`
	BaseURL  string `env:"LLM_BASE_URL"`
	Model    string `env:"LLM_MODEL"`

	// EnableTelegram is a string so "false" survives MarshalEnv.
	EnableTelegram string `env:"ENABLE_TELEGRAM"`
	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	AdminChatID    int64  `env:"ADMIN_CHAT_ID"`

	Debug string `env:"DESK_DEBUG"`
}

type InstallState struct {
	Answers Answers
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
