package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nesting levels: UNDANGAN_STORE__REDIS__ADDR -> store.redis.addr.
const EnvPrefix = "UNDANGAN_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (UNDANGAN_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if cfg.Generator.APIKey == "" {
		for _, name := range apiKeyEnvVars(cfg.Generator.Provider) {
			if v := os.Getenv(name); v != "" {
				cfg.Generator.APIKey = v
				break
			}
		}
	}
	return cfg, nil
}

// listKeys are comma-separated in the environment.
var listKeys = []string{"allowed_origins", "fallback_keys"}

func envKey(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	for _, suffix := range listKeys {
		if !strings.HasSuffix(key, suffix) {
			continue
		}
		var items []string
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				items = append(items, o)
			}
		}
		return key, items
	}
	return key, value
}

// Save writes the configuration to the given YAML file path.
// Secrets are omitted.
func (c *Config) Save(path string) error {
	out := *c
	out.Generator.APIKey = ""
	out.Store.Redis.Password = ""
	out.Store.Encryption = EncryptionConfig{}

	data, err := yamlv3.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderGemini: true,
	ProviderOpenAI: true,
	ProviderNone:   true,
}

var validDrivers = map[StoreDriver]bool{
	StoreMemory: true,
	StoreRedis:  true,
	StoreFile:   true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if !validProviders[c.Generator.Provider] {
		return fmt.Errorf("invalid generator.provider %q: must be one of gemini, openai, none", c.Generator.Provider)
	}
	if c.Generator.Provider != ProviderNone && c.Generator.Model == "" {
		return fmt.Errorf("generator.model is required")
	}
	if c.Generator.Timeout < 0 {
		return fmt.Errorf("generator.timeout must be non-negative")
	}
	if !validDrivers[c.Store.Driver] {
		return fmt.Errorf("invalid store.driver %q: must be one of memory, redis, file", c.Store.Driver)
	}
	if c.Store.Driver == StoreRedis && c.Store.Redis.Addr == "" {
		return fmt.Errorf("store.redis.addr is required for the redis driver")
	}
	if c.Store.Driver == StoreFile && c.Store.File.Dir == "" {
		return fmt.Errorf("store.file.dir is required for the file driver")
	}
	if c.Store.Encryption.Key == "" && len(c.Store.Encryption.FallbackKeys) > 0 {
		return fmt.Errorf("store.encryption.fallback_keys requires store.encryption.key")
	}
	if t := c.Flow.RevealThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("flow.reveal_threshold must be in (0, 1], got %v", t)
	}
	if c.Flow.MaxInputSize <= 0 {
		return fmt.Errorf("flow.max_input_size must be positive")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}
	return nil
}
