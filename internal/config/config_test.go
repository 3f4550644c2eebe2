package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_InvalidInteger(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("HTTP_PORT", "eighty")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate_CollectsProblems(t *testing.T) {
	cfg := &Config{
		HTTPPort:       0,
		LogLevel:       "loud",
		LogFormat:      "xml",
		JWTSecret:      "short",
		RateLimitRPS:   0,
		RateLimitBurst: 0,
		UploadMaxSize:  "lots",
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "UPLOAD_MAX_SIZE")
}

func TestUploadMaxBytes(t *testing.T) {
	tests := map[string]int64{
		"10MB":   10 << 20,
		"512kb":  512 << 10,
		"2048":   2048,
		"100B":   100,
		" 1 MB ": 1 << 20,
	}
	for in, want := range tests {
		cfg := &Config{UploadMaxSize: in}
		got, err := cfg.UploadMaxBytes()
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
