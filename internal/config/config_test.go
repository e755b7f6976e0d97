package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "JWT_ACCESS_EXPIRY", "JWT_REFRESH_EXPIRY", "MINIO_BUCKET", "NOTIFICATION_RETENTION"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTRefreshExpiry)
	assert.Equal(t, "hidrocascavel-media", cfg.MinIOBucket)
	assert.Equal(t, 30*24*time.Hour, cfg.NotificationRetention)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("NOTIFICATION_RETENTION", "720h")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 720*time.Hour, cfg.NotificationRetention)
	assert.True(t, cfg.MinIOUseSSL)
}

func TestGetDurationEnv_IgnoresGarbage(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "not-a-duration")

	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
}
