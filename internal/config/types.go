package config

import "time"

// ProviderType identifies the text-generation backend.
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOpenAI ProviderType = "openai"
	ProviderNone   ProviderType = "none"
)

// StoreDriver identifies the session store backend.
type StoreDriver string

const (
	StoreMemory StoreDriver = "memory"
	StoreRedis  StoreDriver = "redis"
	StoreFile   StoreDriver = "file"
)

// Config is the top-level service configuration, corresponding to undangan.yaml.
type Config struct {
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Generator GeneratorConfig `yaml:"generator" koanf:"generator"`
	Store     StoreConfig     `yaml:"store" koanf:"store"`
	Flow      FlowConfig      `yaml:"flow" koanf:"flow"`
	Content   ContentConfig   `yaml:"content" koanf:"content"`
	Log       LogConfig       `yaml:"log" koanf:"log"`
	Metrics   MetricsConfig   `yaml:"metrics" koanf:"metrics"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" koanf:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
	SecureCookie    bool          `yaml:"secure_cookie" koanf:"secure_cookie"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
}

// GeneratorConfig selects and authenticates the confirmation message backend.
type GeneratorConfig struct {
	Provider ProviderType  `yaml:"provider" koanf:"provider"`
	Model    string        `yaml:"model" koanf:"model"`
	APIKey   string        `yaml:"api_key,omitempty" koanf:"api_key"`
	BaseURL  string        `yaml:"base_url,omitempty" koanf:"base_url"`
	Timeout  time.Duration `yaml:"timeout" koanf:"timeout"`
}

// StoreConfig selects where session snapshots live.
type StoreConfig struct {
	Driver     StoreDriver      `yaml:"driver" koanf:"driver"`
	TTL        time.Duration    `yaml:"ttl" koanf:"ttl"`
	Redis      RedisConfig      `yaml:"redis" koanf:"redis"`
	File       FileConfig       `yaml:"file" koanf:"file"`
	Encryption EncryptionConfig `yaml:"encryption" koanf:"encryption"`
}

// EncryptionConfig enables AES-256-GCM encryption of stored snapshots.
// Keys are base64-encoded 32-byte values; an empty key disables encryption.
type EncryptionConfig struct {
	Key          string   `yaml:"key,omitempty" koanf:"key"`
	FallbackKeys []string `yaml:"fallback_keys,omitempty" koanf:"fallback_keys"`
}

// RedisConfig holds connection settings for the redis driver.
type RedisConfig struct {
	Addr     string `yaml:"addr" koanf:"addr"`
	Password string `yaml:"password,omitempty" koanf:"password"`
	DB       int    `yaml:"db" koanf:"db"`
	Prefix   string `yaml:"prefix" koanf:"prefix"`
}

// FileConfig holds settings for the file driver.
type FileConfig struct {
	Dir string `yaml:"dir" koanf:"dir"`
}

// FlowConfig tunes per-session behaviour.
type FlowConfig struct {
	RevealThreshold float64 `yaml:"reveal_threshold" koanf:"reveal_threshold"`
	MaxInputSize    int     `yaml:"max_input_size" koanf:"max_input_size"`
}

// ContentConfig points at an optional event content override.
type ContentConfig struct {
	Path string `yaml:"path,omitempty" koanf:"path"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
}
