package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=8h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// BcryptCost tunes password hashing; zero or out-of-range values fall
	// back to the bcrypt library default.
	BcryptCost int `env:"BCRYPT_COST, default=0"`

	Mongo MongoConfig
	Redis RedisConfig
	Seed  SeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=ledger"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// SeedConfig optionally bootstraps a SUPERADMIN account on startup. Both
// fields must be set for the seed to run; it is skipped when the account
// already exists.
type SeedConfig struct {
	SuperadminEmail    string `env:"SEED_SUPERADMIN_EMAIL"`
	SuperadminPassword string `env:"SEED_SUPERADMIN_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
