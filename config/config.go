package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped
// onto configuration keys, e.g. TUNEFUL_DB_HOST -> db.host.
const EnvPrefix = "TUNEFUL_"

// Config stores the application configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	Web    WebConfig    `koanf:"web"`
	DB     DBConfig     `koanf:"db"`
	Upload UploadConfig `koanf:"upload"`
	Minio  MinioConfig  `koanf:"minio"`
	Log    LogConfig    `koanf:"log"`
}

type ServerConfig struct {
	Addr string `koanf:"addr" validate:"required"`
}

type WebConfig struct {
	Dir string `koanf:"dir"` // static front page
}

type DBConfig struct {
	Driver   string `koanf:"driver" validate:"required,oneof=mysql postgres sqlite"`
	Host     string `koanf:"host" validate:"required_unless=Driver sqlite"`
	Port     string `koanf:"port" validate:"required_unless=Driver sqlite"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required"` // database name, or file path for sqlite
}

type UploadConfig struct {
	Backend string `koanf:"backend" validate:"required,oneof=local minio"`
	Dir     string `koanf:"dir" validate:"required_if=Backend local"`
}

type MinioConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"accesskey"`
	SecretKey string `koanf:"secretkey"`
	Bucket    string `koanf:"bucket"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"usessl"`
}

type LogConfig struct {
	Level      string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Path       string `koanf:"path"` // empty disables the rotating file output
	MaxSize    int    `koanf:"maxsize"`
	MaxBackups int    `koanf:"maxbackups"`
	MaxAge     int    `koanf:"maxage"`
	Compress   bool   `koanf:"compress"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Web:    WebConfig{Dir: "web"},
		DB: DBConfig{
			Driver: "mysql",
			Host:   "127.0.0.1",
			Port:   "3306",
			User:   "root",
			Name:   "tuneful",
		},
		Upload: UploadConfig{
			Backend: "local",
			Dir:     "uploads",
		},
		Minio: MinioConfig{
			Bucket: "tuneful",
			Region: "us-east-1",
		},
		Log: LogConfig{
			Level:      "info",
			Path:       filepath.Join("logs", "tuneful.log"),
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// TUNEFUL_* environment variables, in that order of precedence.
func Load(path string) (*Config, error) {
	// godotenv.Load() does not override variables that are already set.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}

	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

// Validate checks field constraints and the MinIO settings required by the
// minio upload backend.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Upload.Backend == "minio" {
		if c.Minio.Endpoint == "" || c.Minio.Bucket == "" {
			return fmt.Errorf("invalid config: minio.endpoint and minio.bucket are required for the minio upload backend")
		}
	}
	return nil
}
