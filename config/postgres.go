package config

import "time"

type Postgres struct {
	DSN             string        `env:"PG_DSN,notEmpty" json:"-"`
	MaxConns        int32         `env:"PG_MAX_CONNS" envDefault:"10"`
	MinConns        int32         `env:"PG_MIN_CONNS" envDefault:"2"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
}
