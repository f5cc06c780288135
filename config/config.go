package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Postgres Postgres
	Server   Server
	Auth     Auth
	Log      Log
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET,notEmpty" json:"-"`
	TokenTTL  int    `env:"JWT_TOKEN_TTL_HOURS" envDefault:"24"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
