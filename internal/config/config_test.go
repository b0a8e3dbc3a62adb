package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("STORE_DRIVER", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.RateLimit.SubmissionsPerMinute)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SERVER_MAX_UPLOAD_MB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Frontend.CORSOrigins)
	assert.Equal(t, 32, cfg.Server.MaxUploadMB)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Environment: "production",
		Store:       StoreConfig{Driver: "postgres"},
		JWT:         JWTConfig{SecretKey: defaultJWTSecret},
		RateLimit:   RateLimitConfig{SubmissionsPerMinute: 1},
	}
	assert.Error(t, cfg.Validate())

	cfg.JWT.SecretKey = "s3cret"
	assert.Error(t, cfg.Validate(), "database password required")

	cfg.Database.Password = "pw"
	assert.NoError(t, cfg.Validate())

	cfg.Store.Driver = "mongo"
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Database: "permits", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=permits sslmode=disable", d.DSN())
}
