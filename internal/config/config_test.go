package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNValueDefaults(t *testing.T) {
	var db DatabaseConfig
	assert.Equal(t,
		"root:password@tcp(127.0.0.1:3306)/site_core?charset=utf8mb4&parseTime=True&loc=Local",
		db.DSNValue())
}

func TestDSNValueExplicitDSNWins(t *testing.T) {
	db := DatabaseConfig{
		DSN:  "user:pw@tcp(db:3306)/other",
		Host: "ignored",
	}
	assert.Equal(t, "user:pw@tcp(db:3306)/other", db.DSNValue())
}

func TestDSNValueBuildsFromParts(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     3307,
		User:     "site",
		Password: "s3cret",
		Name:     "cms",
	}
	assert.Equal(t,
		"site:s3cret@tcp(db.internal:3307)/cms?charset=utf8mb4&parseTime=True&loc=Local",
		db.DSNValue())
}

func TestRedisURLValue(t *testing.T) {
	var r RedisConfig
	assert.Equal(t, "redis://localhost:6379/0", r.URLValue())

	r = RedisConfig{Host: "cache", Port: 6380, Password: "pw", DB: 2, TLS: true}
	assert.Equal(t, "rediss://:pw@cache:6380/2", r.URLValue())

	r = RedisConfig{URL: "redis://explicit:6379/1"}
	assert.Equal(t, "redis://explicit:6379/1", r.URLValue())
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, int64(DefaultImageUploadLimit), cfg.Upload.ImageLimitBytes)
	assert.Equal(t, "website-images", cfg.Upload.KeyPrefix)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
port: 8080
env: production
jwt_secret: test-secret
allowed_origins:
  - example.com
  - " "
env_admin:
  email: Admin@Example.COM
  password: pw
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, []string{"example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "admin@example.com", cfg.EnvAdmin.Email)
	assert.Equal(t, "Admin", cfg.EnvAdmin.Name)
	assert.True(t, cfg.HasEnvAdmin())
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("not_a_field: 1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: 99999\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
