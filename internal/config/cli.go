package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

// CLIConfig is what the webtoonhub command line client reads from the
// environment. Flags override it.
type CLIConfig struct {
	APIURL     string        `env:"WEBTOONHUB_API" default:"http://localhost:8000"`
	LogLevel   string        `env:"WEBTOONHUB_LOG_LEVEL" default:"warn"`
	ReplyDelay time.Duration `env:"WEBTOONHUB_REPLY_DELAY" default:"1.5s"`
	PageSize   int           `env:"WEBTOONHUB_PAGE_SIZE" default:"5"`
}

// LoadCLIConfig loads the client configuration. A missing .env is silent.
func LoadCLIConfig() (*CLIConfig, error) {
	_ = godotenv.Load(".env")

	config := &CLIConfig{}
	if err := loadEnvString(&config.APIURL, "WEBTOONHUB_API", "http://localhost:8000"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogLevel, "WEBTOONHUB_LOG_LEVEL", "warn"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.ReplyDelay, "WEBTOONHUB_REPLY_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.PageSize, "WEBTOONHUB_PAGE_SIZE", 5); err != nil {
		return nil, err
	}
	if config.PageSize < 1 || config.PageSize > 100 {
		return nil, fmt.Errorf("WEBTOONHUB_PAGE_SIZE must be between 1 and 100")
	}
	return config, nil
}
