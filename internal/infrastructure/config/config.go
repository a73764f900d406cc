package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Election ElectionConfig
	Admin    AdminConfig
	Identity IdentityConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type ElectionConfig struct {
	CouncilSize   int           `env:"COUNCIL_SIZE,    default=15"`
	ExecutiveSize int           `env:"EXECUTIVE_SIZE,  default=7"`
	TokenTTL      time.Duration `env:"VOTER_TOKEN_TTL, default=24h"`
	// ReconcileInterval is how often the repair pass for stale session
	// flags runs. Zero disables the background reconciler.
	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL, default=5m"`
}

type AdminConfig struct {
	// Emails is the list of identities granted admin on login.
	Emails []string `env:"ADMIN_EMAILS"`
	// PasswordHash is the bcrypt hash for the legacy password login.
	// Empty disables that route.
	PasswordHash string `env:"ADMIN_PASSWORD_HASH"`
}

type IdentityConfig struct {
	// AssertionSecret is the HS256 secret shared with the identity
	// provider for signed identity assertions.
	AssertionSecret string `env:"IDENTITY_ASSERTION_SECRET"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=election"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
