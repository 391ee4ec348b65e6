package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/deskbot/pkg/log"
)

const (
	ContactStoreSQLite = "sqlite"
	ContactStoreRedis  = "redis"
)

type AppConfig struct {
	RuntimePath string `env:"DESK_RUNTIME_PATH" envDefault:".deskbot"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"true"`
	EnableVoice    bool `env:"ENABLE_VOICE" envDefault:"true"`

	// Session state
	HistorySize   int           `env:"HISTORY_SIZE" envDefault:"4"`
	SessionIdle   time.Duration `env:"SESSION_IDLE" envDefault:"6h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`

	// Admission control
	RateLimit  int           `env:"RATE_LIMIT" envDefault:"2"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"3s"`

	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"60s"`

	ContactStore string `env:"CONTACT_STORE" envDefault:"sqlite"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "deskbot.db")
}

func (c AppConfig) GetPromptsDir() string {
	return filepath.Join(c.RuntimePath, "prompts")
}

func (c AppConfig) GetPersonasPath() string {
	return filepath.Join(c.RuntimePath, "personas.yaml")
}

func (c AppConfig) GetServicesPath() string {
	return filepath.Join(c.RuntimePath, "services.yaml")
}

func (c AppConfig) GetLLMParamsPath() string {
	return filepath.Join(c.RuntimePath, "llm.yaml")
}

func (c AppConfig) GetInputHistoryPath() string {
	return filepath.Join(c.RuntimePath, "input_history")
}

func (c AppConfig) UseRedisContacts() bool {
	return c.ContactStore == ContactStoreRedis
}
