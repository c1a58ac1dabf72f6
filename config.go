package storefront

import (
	"errors"
	"fmt"
	"time"

	"github.com/neurogrid/storefront/core/config"
	redisdb "github.com/neurogrid/storefront/integration/database/redis"
)

// Token store backends.
const (
	TokenStoreFile   = "file"
	TokenStoreMemory = "memory"
	TokenStoreRedis  = "redis"
)

// Config is the storefront client configuration, read from STOREFRONT_* variables.
type Config struct {
	APIBaseURL  string        `env:"STOREFRONT_API_BASE_URL" envDefault:"http://localhost:8001/api"`
	HTTPTimeout time.Duration `env:"STOREFRONT_HTTP_TIMEOUT" envDefault:"15s"`
	UserAgent   string        `env:"STOREFRONT_USER_AGENT" envDefault:"storefront-cli"`

	TokenStore string `env:"STOREFRONT_TOKEN_STORE" envDefault:"file"`
	TokenFile  string `env:"STOREFRONT_TOKEN_FILE"`
	TokenKey   string `env:"STOREFRONT_TOKEN_KEY"`

	Redis redisdb.Config `envPrefix:"STOREFRONT_"`

	EmailSource     string        `env:"STOREFRONT_EMAIL_SOURCE" envDefault:"hero_cta"`
	EmailCloseDelay time.Duration `env:"STOREFRONT_EMAIL_CLOSE_DELAY" envDefault:"2s"`

	PromptAuthOnPurchase bool `env:"STOREFRONT_PROMPT_AUTH_ON_PURCHASE" envDefault:"false"`
	LoginAfterRegister   bool `env:"STOREFRONT_LOGIN_AFTER_REGISTER" envDefault:"false"`

	LogLevel  string `env:"STOREFRONT_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"STOREFRONT_LOG_FORMAT" envDefault:"text"`
}

// LoadConfig reads Config from the environment and an optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot.
func (c Config) Validate() error {
	var errs []error
	if c.APIBaseURL == "" {
		errs = append(errs, fmt.Errorf("api base url is empty"))
	}
	switch c.TokenStore {
	case TokenStoreFile, TokenStoreMemory, TokenStoreRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown token store %q", c.TokenStore))
	}
	if c.EmailCloseDelay < 0 {
		errs = append(errs, fmt.Errorf("email close delay must not be negative"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
