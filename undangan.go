package undangan

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sulaimaniyah/undangan/internal/config"
	"github.com/sulaimaniyah/undangan/internal/content"
	"github.com/sulaimaniyah/undangan/internal/logging"
	"github.com/sulaimaniyah/undangan/pkg/adapters/file"
	"github.com/sulaimaniyah/undangan/pkg/adapters/gemini"
	httpAdapter "github.com/sulaimaniyah/undangan/pkg/adapters/http"
	"github.com/sulaimaniyah/undangan/pkg/adapters/memory"
	"github.com/sulaimaniyah/undangan/pkg/adapters/openai"
	"github.com/sulaimaniyah/undangan/pkg/adapters/redis"
	"github.com/sulaimaniyah/undangan/pkg/confirm"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/flow"
	"github.com/sulaimaniyah/undangan/pkg/observability"
	"github.com/sulaimaniyah/undangan/pkg/persistence/middleware"
	"github.com/sulaimaniyah/undangan/pkg/ports"
	"github.com/sulaimaniyah/undangan/pkg/session"
)

//go:embed VERSION
var rawVersion string

// Version is the release of this module.
var Version = strings.TrimSpace(rawVersion)

// App wires configuration into a ready-to-serve invitation.
type App struct {
	Config  *config.Config
	Content *content.Content
	Manager *session.Manager
	Metrics *observability.Metrics
	Streams *httpAdapter.StreamManager
	Server  *httpAdapter.Server

	store     ports.StateStore
	locker    ports.DistributedLocker
	generator ports.Generator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	closers   []func() error
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithStore injects a session store, bypassing store.driver.
func WithStore(store ports.StateStore) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithGenerator injects a text generator, bypassing generator.provider.
func WithGenerator(g ports.Generator) Option {
	return func(a *App) {
		a.generator = g
	}
}

// WithLifecycleHooks registers extra observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *App) {
		a.hooks = a.hooks.Merge(hooks)
	}
}

// New builds the application from cfg. A nil cfg uses the defaults.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a := &App{Config: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.NewNop()
	}

	c, err := content.Load(cfg.Content.Path)
	if err != nil {
		return nil, err
	}
	a.Content = c

	if a.store == nil {
		store, locker, closer, err := OpenStore(cfg.Store)
		if err != nil {
			return nil, err
		}
		a.store, a.locker = store, locker
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}
	if a.generator == nil {
		a.generator = NewGenerator(cfg.Generator)
	}

	hooks := observability.AuditHooks(a.logger).Merge(a.hooks)
	if cfg.Metrics.Enabled {
		a.Metrics = observability.NewMetrics()
		hooks = hooks.Merge(a.Metrics.Hooks())
	}

	confirmer := confirm.NewService(a.generator,
		confirm.WithModel(cfg.Generator.Model),
		confirm.WithTimeout(cfg.Generator.Timeout),
		confirm.WithLogger(a.logger),
	)

	bridge := httpAdapter.NewHostBridge()
	a.Streams = httpAdapter.NewStreamManager(a.logger)

	managerOpts := []session.Option{
		session.WithLogger(a.logger),
		session.WithListener(a.Streams.Publish),
		session.WithFlowOptions(
			flow.WithScroller(bridge),
			flow.WithAudioPlayer(bridge),
			flow.WithLifecycleHooks(hooks),
			flow.WithLogger(a.logger),
			flow.WithRevealThreshold(cfg.Flow.RevealThreshold),
			flow.WithMaxInputSize(cfg.Flow.MaxInputSize),
		),
	}
	if a.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(a.locker))
	}
	a.Manager = session.NewManager(a.store, confirmer, managerOpts...)

	serverOpts := []httpAdapter.Option{
		httpAdapter.WithStreams(a.Streams),
		httpAdapter.WithLogger(a.logger),
		httpAdapter.WithSecureCookie(cfg.Server.SecureCookie),
		httpAdapter.WithRevealThreshold(cfg.Flow.RevealThreshold),
		httpAdapter.WithAllowedOrigins(cfg.Server.AllowedOrigins...),
		httpAdapter.WithHealthCheck(a.Ping),
	}
	if a.Metrics != nil {
		a.Metrics.RegisterLiveSessions(func() int { return len(a.Manager.Live()) })
		serverOpts = append(serverOpts, httpAdapter.WithMetrics(a.Metrics.Handler()))
	}
	a.Server, err = httpAdapter.NewServer(a.Manager, a.Content, serverOpts...)
	if err != nil {
		return nil, err
	}

	a.logger.Info("undangan ready",
		"version", Version,
		"store", cfg.Store.Driver,
		"generator", cfg.Generator.Provider,
		"model", cfg.Generator.Model,
		"metrics", cfg.Metrics.Enabled,
	)
	return a, nil
}

// Handler returns the HTTP handler serving the invitation.
func (a *App) Handler() http.Handler {
	return a.Server
}

// Store returns the session store in use.
func (a *App) Store() ports.StateStore {
	return a.store
}

// Ping checks the session store when it supports health checks.
func (a *App) Ping(ctx context.Context) error {
	if p, ok := a.store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close persists and releases live sessions, then closes the store.
func (a *App) Close() error {
	ctx := context.Background()
	var errs []error
	for _, id := range a.Manager.Live() {
		if err := a.Manager.Persist(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("persist %s: %w", id, err))
		}
	}
	a.Manager.CloseAll()
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStore creates the session store selected by cfg. The redis driver
// also returns a distributed locker and a closer for its connection.
func OpenStore(cfg config.StoreConfig) (ports.StateStore, ports.DistributedLocker, func() error, error) {
	var (
		store  ports.StateStore
		locker ports.DistributedLocker
		closer func() error
	)
	switch cfg.Driver {
	case config.StoreMemory, "":
		store = memory.NewStore()
	case config.StoreFile:
		store = file.New(cfg.File.Dir)
	case config.StoreRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		store, locker, closer = rs, redis.NewLocker(rs.Client(), rs.Prefix()), rs.Close
	default:
		return nil, nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if cfg.Encryption.Key != "" {
		keys, err := middleware.ParseKeys(cfg.Encryption.Key, cfg.Encryption.FallbackKeys)
		if err != nil {
			if closer != nil {
				_ = closer()
			}
			return nil, nil, nil, fmt.Errorf("store encryption: %w", err)
		}
		encrypt, err := middleware.NewEncryptionMiddleware(keys)
		if err != nil {
			if closer != nil {
				_ = closer()
			}
			return nil, nil, nil, fmt.Errorf("store encryption: %w", err)
		}
		store = middleware.Chain(store, encrypt)
	}
	return store, locker, closer, nil
}

// NewGenerator creates the text generator selected by cfg. The "none"
// provider returns nil, which makes every confirmation use the fallback.
func NewGenerator(cfg config.GeneratorConfig) ports.Generator {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.New(cfg.APIKey, cfg.BaseURL)
	case config.ProviderNone:
		return nil
	default:
		var opts []gemini.Option
		if cfg.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(cfg.BaseURL))
		}
		return gemini.New(cfg.APIKey, opts...)
	}
}
