package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/deskbot/pkg/log"
)

type RedisConfig struct {
	URL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
	KeyPrefix string        `env:"REDIS_KEY_PREFIX" envDefault:"deskbot:"`
	TTL       time.Duration `env:"REDIS_CONTACT_TTL" envDefault:"0s"`
}

func NewRedisConfig(ctx context.Context) *RedisConfig {
	c := &RedisConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Redis config")
	}
	return c
}
