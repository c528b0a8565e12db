package cli

import (
	"log/slog"

	"github.com/aretw0/pathrace/internal/config"
	"github.com/aretw0/pathrace/internal/telemetry"
	"github.com/aretw0/pathrace/pkg/adapters/memory"
	redisstore "github.com/aretw0/pathrace/pkg/adapters/redis"
	"github.com/aretw0/pathrace/pkg/compare"
	"github.com/aretw0/pathrace/pkg/ports"
)

// App bundles what every command needs.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Catalog *config.Catalog
	Metrics *telemetry.Metrics
}

// NewApp loads the config file (an empty path means defaults) and the
// preset catalog.
func NewApp(configPath string, debug bool) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	return &App{
		Config:  cfg,
		Logger:  createLogger(debug),
		Catalog: catalog,
		Metrics: telemetry.New(),
	}, nil
}

// Comparator is configured from the compare section and reports to the
// app's metrics.
func (a *App) Comparator() *compare.Comparator {
	return compare.New(
		compare.WithLogger(a.Logger),
		compare.WithParallel(a.Config.Compare.Parallel),
		compare.WithHooks(a.Metrics.Hooks(a.Logger)),
	)
}

// Store opens the session store: Redis when an address is configured,
// memory otherwise. The locker is nil for the memory store.
func (a *App) Store() (ports.SessionStore, ports.DistributedLocker, func() error) {
	rc := a.Config.Redis
	if rc.Addr == "" {
		return memory.NewStore(), nil, func() error { return nil }
	}
	store := redisstore.New(rc.Addr, rc.Password, rc.DB,
		redisstore.WithPrefix(rc.Prefix+":session:"),
		redisstore.WithTTL(a.Config.Session.TTL),
	)
	locker := redisstore.NewLocker(store.Client(), rc.Prefix+":")
	a.Logger.Info("Using Redis session store", "addr", rc.Addr, "prefix", rc.Prefix)
	return store, locker, store.Close
}
