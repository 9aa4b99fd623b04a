package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration, loaded from a yaml file and
// overridable by environment variables.
type Config struct {
	App struct {
		Env  string `yaml:"env"`
		Port int    `yaml:"port"`
		// Public frontend origin, used for invite links
		Origin string `yaml:"origin"`
	} `yaml:"app"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
	} `yaml:"database"`

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	JWT struct {
		Secret    string        `yaml:"secret"`
		ExpiresIn time.Duration `yaml:"expires_in"`
		RefreshIn time.Duration `yaml:"refresh_in"`
	} `yaml:"jwt"`

	CORS struct {
		AllowOrigins string `yaml:"allow_origins"`
	} `yaml:"cors"`

	OAuth OAuthConfig `yaml:"oauth"`

	ImageHost struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"image_host"`

	Storage StorageConfig `yaml:"storage"`

	Session struct {
		// Profile fetch deadline during login (degrades to pending on expiry)
		ResolveTimeout time.Duration `yaml:"resolve_timeout"`
	} `yaml:"session"`
}

// StorageConfig S3 호환 오브젝트 스토리지 설정 (악보 이미지 업로드용)
type StorageConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	CDNURL          string `yaml:"cdn_url"`
	BasePath        string `yaml:"base_path"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

// OAuthConfig Google 소셜 로그인 설정
type OAuthConfig struct {
	GoogleClientID     string `yaml:"google_client_id"`
	GoogleClientSecret string `yaml:"google_client_secret"`
	GoogleRedirectURL  string `yaml:"google_redirect_url"`
}

// Load reads the yaml config at path and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.setDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) setDefaults() {
	c.App.Env = "local"
	c.App.Port = 8080
	c.Database.Port = 3306
	c.Redis.Port = 6379
	c.Redis.PoolSize = 10
	c.JWT.ExpiresIn = 30 * time.Minute
	c.JWT.RefreshIn = 7 * 24 * time.Hour
	c.Session.ResolveTimeout = 2 * time.Second
}

// applyEnv lets environment variables override file values, so secrets stay
// out of checked-in yaml.
func (c *Config) applyEnv() {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setStr(&c.App.Env, "APP_ENV")
	setInt(&c.App.Port, "APP_PORT")
	setStr(&c.App.Origin, "APP_ORIGIN")
	setStr(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setStr(&c.Database.User, "DB_USER")
	setStr(&c.Database.Password, "DB_PASSWORD")
	setStr(&c.Database.Name, "DB_NAME")
	setStr(&c.Redis.Host, "REDIS_HOST")
	setInt(&c.Redis.Port, "REDIS_PORT")
	setStr(&c.Redis.Password, "REDIS_PASSWORD")
	setStr(&c.JWT.Secret, "JWT_SECRET")
	setStr(&c.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
	setStr(&c.OAuth.GoogleClientID, "GOOGLE_CLIENT_ID")
	setStr(&c.OAuth.GoogleClientSecret, "GOOGLE_CLIENT_SECRET")
	setStr(&c.OAuth.GoogleRedirectURL, "GOOGLE_REDIRECT_URL")
	setStr(&c.ImageHost.APIKey, "IMGBB_API_KEY")
	setStr(&c.Storage.AccessKeyID, "STORAGE_ACCESS_KEY_ID")
	setStr(&c.Storage.SecretAccessKey, "STORAGE_SECRET_ACCESS_KEY")
}

// DSN returns the MySQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

// IsDevelopment reports whether the app runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev" || c.App.Env == "development"
}
