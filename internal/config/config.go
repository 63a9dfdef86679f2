package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Share store backends.
const (
	BackendMemory   = "memory"
	BackendDatabase = "database"
	BackendMinio    = "minio"
)

// Database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Server struct {
		Port     int    `yaml:"port"`
		BasePath string `yaml:"basePath"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI AI `yaml:"ai"`

	Share struct {
		Backend string `yaml:"backend"`
	} `yaml:"share"`

	Auth struct {
		// UserKeys maps user id to bearer key for the audit endpoints.
		UserKeys map[string]string `yaml:"userKeys"`
	} `yaml:"auth"`
}

// AI holds provider credentials and the candidate order.
type AI struct {
	AnthropicKey     string   `yaml:"anthropicKey"`
	AnthropicBaseURL string   `yaml:"anthropicBaseURL"`
	AnthropicModels  []string `yaml:"anthropicModels"`
	OpenAIKey        string   `yaml:"openaiKey"`
	OpenAIBaseURL    string   `yaml:"openaiBaseURL"`
	OpenAIModel      string   `yaml:"openaiModel"`
	TimeoutSeconds   int      `yaml:"timeoutSeconds"`
}

// DefaultAnthropicModels is tried in order, best first.
var DefaultAnthropicModels = []string{
	"claude-3-5-sonnet-latest",
	"claude-3-5-sonnet-20240620",
	"claude-3-haiku-20240307",
}

const (
	DefaultOpenAIModel = "gpt-4o"
	DefaultTimeout     = 25 * time.Second
	defaultPort        = 8080
)

// Timeout is the per-attempt bound for one provider call.
func (a AI) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Load reads the yaml file at path. A missing file is not an error: the
// defaults describe a server with no providers and an in-memory share store.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.AI.AnthropicKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.AI.OpenAIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if len(c.AI.AnthropicModels) == 0 {
		c.AI.AnthropicModels = append([]string(nil), DefaultAnthropicModels...)
	}
	if c.AI.OpenAIModel == "" {
		c.AI.OpenAIModel = DefaultOpenAIModel
	}
	if c.Share.Backend == "" {
		c.Share.Backend = BackendMemory
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
}

func (c *Config) validate() error {
	switch c.Share.Backend {
	case BackendMemory, BackendMinio:
	case BackendDatabase:
		if c.Database.Driver == "" {
			return fmt.Errorf("share backend %q requires database.driver", BackendDatabase)
		}
	default:
		return fmt.Errorf("unknown share backend %q", c.Share.Backend)
	}
	if c.Share.Backend == BackendMinio && c.Minio.Endpoint == "" {
		return fmt.Errorf("share backend %q requires minio.endpoint", BackendMinio)
	}
	switch c.Database.Driver {
	case "", DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	return nil
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection URL.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// WriteTimeout covers the worst-case provider chain plus a margin.
func (c *Config) WriteTimeout() time.Duration {
	attempts := len(c.AI.AnthropicModels) + 1
	return time.Duration(attempts)*c.AI.Timeout() + 15*time.Second
}
