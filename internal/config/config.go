package config

import (
	"bytes"
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 4000
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "site_core"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0

	// DefaultImageUploadLimit caps multipart image uploads.
	DefaultImageUploadLimit = 5 << 20
	// DefaultRequestBodyLimit caps the overall request body for upload routes.
	DefaultRequestBodyLimit = 50 << 20
)

// AppConfig holds runtime startup configuration loaded from YAML,
// with secrets optionally overridden from the process environment.
type AppConfig struct {
	Port           int            `yaml:"port"`
	Env            string         `yaml:"env"` // "development" | "production"
	Database       DatabaseConfig `yaml:"database"`
	Redis          RedisConfig    `yaml:"redis"`
	JWTSecret      string         `yaml:"jwt_secret"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	EnvAdmin       EnvAdminConfig `yaml:"env_admin"`
	Storage        StorageConfig  `yaml:"storage"`
	Upload         UploadConfig   `yaml:"upload"`
	Backup         BackupConfig   `yaml:"backup"`
}

// DatabaseConfig describes the MySQL connection.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
	Loc      string `yaml:"loc"`
}

// RedisConfig describes the Redis connection used for HTTP caching.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// EnvAdminConfig is the environment-provisioned administrator identity.
// When set, a login with this email is accepted without a database row.
type EnvAdminConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"` // bcrypt hash or plaintext
	Name     string `yaml:"name"`
}

// StorageConfig configures the S3-compatible object store backing the CDN.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	// PublicBaseURL is prepended to object keys to form CDN URLs.
	PublicBaseURL string `yaml:"public_base_url"`
}

// UploadConfig bounds incoming image uploads.
type UploadConfig struct {
	// ImageLimitBytes is the per-file limit enforced after reading.
	ImageLimitBytes int64 `yaml:"image_limit_bytes"`
	// BodyLimitBytes is the multipart body limit enforced by the router.
	BodyLimitBytes int64 `yaml:"body_limit_bytes"`
	// KeyPrefix namespaces uploaded objects, e.g. "website-images".
	KeyPrefix string `yaml:"key_prefix"`
}

// BackupConfig controls the periodic database export job.
type BackupConfig struct {
	Enable bool   `yaml:"enable"`
	Dir    string `yaml:"dir"`
	// UploadToStorage pushes finished archives to the object store.
	UploadToStorage bool `yaml:"upload_to_storage"`
}

// Load reads the YAML config file and applies environment overrides.
// A .env file next to the process, if present, is merged first.
func Load(configPath string) (*AppConfig, error) {
	// Missing .env is not an error.
	_ = godotenv.Load()

	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err) && strings.TrimSpace(configPath) == "":
		// Default path absent: run on defaults plus environment.
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d, expected 1-65535", cfg.Port)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Host:     defaultDBHost,
			Port:     defaultDBPort,
			User:     defaultDBUser,
			Password: defaultDBPassword,
			Name:     defaultDBName,
			Charset:  defaultDBCharset,
			Loc:      defaultDBLoc,
		},
		Redis: RedisConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		Upload: UploadConfig{
			ImageLimitBytes: DefaultImageUploadLimit,
			BodyLimitBytes:  DefaultRequestBodyLimit,
			KeyPrefix:       "website-images",
		},
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := envString("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := envString("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := envString("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := envString("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := envString("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := envString("ADMIN_EMAIL"); v != "" {
		cfg.EnvAdmin.Email = v
	}
	if v := envString("ADMIN_PASSWORD"); v != "" {
		cfg.EnvAdmin.Password = v
	}
	if v := envString("ADMIN_NAME"); v != "" {
		cfg.EnvAdmin.Name = v
	}
	if v := envString("STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := envString("STORAGE_REGION"); v != "" {
		cfg.Storage.Region = v
	}
	if v := envString("STORAGE_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := envString("STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := envString("STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := envString("STORAGE_PUBLIC_BASE_URL"); v != "" {
		cfg.Storage.PublicBaseURL = v
	}
}

func envString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func normalize(cfg *AppConfig) {
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	cfg.EnvAdmin.Email = strings.ToLower(strings.TrimSpace(cfg.EnvAdmin.Email))
	cfg.EnvAdmin.Name = strings.TrimSpace(cfg.EnvAdmin.Name)
	if cfg.EnvAdmin.Email != "" && cfg.EnvAdmin.Name == "" {
		cfg.EnvAdmin.Name = "Admin"
	}
	if cfg.Upload.ImageLimitBytes <= 0 {
		cfg.Upload.ImageLimitBytes = DefaultImageUploadLimit
	}
	if cfg.Upload.BodyLimitBytes <= 0 {
		cfg.Upload.BodyLimitBytes = DefaultRequestBodyLimit
	}
	if cfg.Upload.KeyPrefix == "" {
		cfg.Upload.KeyPrefix = "website-images"
	}
	cfg.Storage.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.Storage.PublicBaseURL), "/")

	out := cfg.AllowedOrigins[:0]
	for _, origin := range cfg.AllowedOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	cfg.AllowedOrigins = out
}

// DSNValue builds the MySQL DSN, preferring an explicit dsn field.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(c.User)
	if user == "" {
		user = defaultDBUser
	}
	password := strings.TrimSpace(c.Password)
	if password == "" {
		password = defaultDBPassword
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(c.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := strings.TrimSpace(c.Loc)
	if loc == "" {
		loc = defaultDBLoc
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=True&loc=%s",
		user, password, net.JoinHostPort(host, strconv.Itoa(port)), name, charset, neturl.QueryEscape(loc))
}

// URLValue builds the redis:// URL, preferring an explicit url field.
func (c RedisConfig) URLValue() string {
	if v := strings.TrimSpace(c.URL); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := c.Port
	if port == 0 {
		port = defaultRedisPort
	}
	db := c.DB
	if db < 0 {
		db = defaultRedisDB
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}

	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(db),
	}
	username := strings.TrimSpace(c.Username)
	password := strings.TrimSpace(c.Password)
	switch {
	case username != "" && password != "":
		u.User = neturl.UserPassword(username, password)
	case username != "":
		u.User = neturl.User(username)
	case password != "":
		u.User = neturl.UserPassword("", password)
	}
	return u.String()
}

// HasEnvAdmin reports whether an environment admin identity is configured.
func (c *AppConfig) HasEnvAdmin() bool {
	return c.EnvAdmin.Email != "" && c.EnvAdmin.Password != ""
}

// HasStorage reports whether the object store is configured.
func (c *AppConfig) HasStorage() bool {
	return c.Storage.Bucket != "" && c.Storage.AccessKey != "" && c.Storage.SecretKey != ""
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}
