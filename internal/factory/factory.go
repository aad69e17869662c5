package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/starkrivals/starkrivals/internal/api/sse"
	"github.com/starkrivals/starkrivals/internal/dependencies/clock"
	"github.com/starkrivals/starkrivals/internal/dependencies/random"
	"github.com/starkrivals/starkrivals/internal/services/combat"
	"github.com/starkrivals/starkrivals/internal/services/dealer"
	"github.com/starkrivals/starkrivals/internal/services/engine"
	"github.com/starkrivals/starkrivals/internal/services/identity"
	"github.com/starkrivals/starkrivals/internal/storage"
	"github.com/starkrivals/starkrivals/internal/storage/memory"
	redisstorage "github.com/starkrivals/starkrivals/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DealerService    *dealer.Service
	EngineController *engine.Controller
	IdentityService  *identity.Service
	HubManager       *sse.HubManager
	Broadcaster      *sse.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// CombatPolicy controls damage computation (optional)
	// If zero value, defaults to combat.DefaultPolicy()
	CombatPolicy combat.Policy
	// IdentityConfig holds configuration for the identity service (optional)
	// If zero value, defaults to identity.DefaultConfig()
	IdentityConfig identity.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	policy := cfg.CombatPolicy
	if policy.BatteryScaling == 0 {
		policy = combat.DefaultPolicy()
	}

	identityCfg := cfg.IdentityConfig
	if identityCfg.TokenDuration == 0 {
		identityCfg = identity.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, policy, identityCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, policy combat.Policy, identityCfg identity.Config, logger *slog.Logger) *App {
	// Create services
	dealerService := dealer.New(store, rnd, logger)
	engineController := engine.NewController(store, policy, clk, logger)
	identityService := identity.New(store, clk, identityCfg)
	hubManager := sse.NewHubManager(logger)

	// Committed engine events fan out to SSE subscribers
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	engineController.SetEventSink(broadcaster)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		DealerService:    dealerService,
		EngineController: engineController,
		IdentityService:  identityService,
		HubManager:       hubManager,
		Broadcaster:      broadcaster,
	}
}
