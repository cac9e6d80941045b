package config

import (
	"path/filepath"
	"time"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "undangan.yaml"

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Generator: GeneratorConfig{
			Provider: ProviderGemini,
			Model:    "gemini-2.5-flash",
			Timeout:  15 * time.Second,
		},
		Store: StoreConfig{
			Driver: StoreMemory,
			TTL:    72 * time.Hour,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "undangan:session:",
			},
			File: FileConfig{
				Dir: filepath.Join(".undangan", "sessions"),
			},
		},
		Flow: FlowConfig{
			RevealThreshold: 0.4,
			MaxInputSize:    256,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// apiKeyEnvVars are consulted in order when generator.api_key is unset.
func apiKeyEnvVars(p ProviderType) []string {
	switch p {
	case ProviderOpenAI:
		return []string{"API_KEY", "OPENAI_API_KEY"}
	default:
		return []string{"API_KEY", "GEMINI_API_KEY"}
	}
}
