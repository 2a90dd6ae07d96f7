package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/cylondata/docnav/internal/config"
	"github.com/cylondata/docnav/internal/httpserver"
	"github.com/cylondata/docnav/internal/httpserver/deps"
	"github.com/cylondata/docnav/internal/index"
	"github.com/cylondata/docnav/internal/logger"
	"github.com/cylondata/docnav/internal/metrics"
	"github.com/cylondata/docnav/internal/redis"
	"github.com/cylondata/docnav/internal/scheduler"
	"github.com/cylondata/docnav/internal/sidebar"
	"github.com/cylondata/docnav/internal/sources/docusaurus"
	redisstore "github.com/cylondata/docnav/internal/store/redis"
	"github.com/cylondata/docnav/internal/version"
	"github.com/cylondata/docnav/internal/watch"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.SidebarReloader
	collector   *scheduler.RevisionCollector // nil when redis is disabled
	watcher     *watch.FileWatcher           // nil when watching is disabled
}

// New wires the service from cfg. Redis is connected (with retries) when configured.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	memIndex := index.NewMemoryIndex()
	m := metrics.New()

	var (
		redisClient *goredis.Client
		store       scheduler.SnapshotStore
		pinger      deps.Pinger
		collector   *scheduler.RevisionCollector
	)
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		loggerClient.Info("Redis initialized successfully")

		redisClient = client
		s := redisstore.NewStore(client)
		store, pinger = s, s

		// Serve the last stored sidebar until the source has been read.
		syncer := scheduler.NewRedisSyncer(store, memIndex, loggerClient)
		if err := syncer.Sync(ctx); err != nil {
			loggerClient.Warn("failed to sync from redis on startup, will load from source",
				logger.Error(err))
		}

		collector = scheduler.NewRevisionCollector(store, loggerClient, cfg.PruneInterval, cfg.KeepRevisions)
	} else {
		loggerClient.Info("redis not configured, sidebar snapshots disabled")
	}

	var (
		source     scheduler.SidebarSource
		sourceName string
	)
	if cfg.SidebarFile != "" {
		source = docusaurus.NewLoader(cfg.SidebarFile)
		sourceName = cfg.SidebarFile
	} else {
		source = sidebar.Static{Spec: sidebar.Default()}
		sourceName = "authored"
	}

	// Shared by POST /reload and the file watcher. A pending reload absorbs further requests.
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewSidebarReloader(
		source,
		sourceName,
		store,
		memIndex,
		m,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	var (
		watcher     *watch.FileWatcher
		watchStatus deps.WatchStatus
	)
	if cfg.Watch {
		w, err := watch.NewFileWatcher(cfg.SidebarFile, cfg.WatchDebounce, reloadTrigger, loggerClient)
		if err != nil {
			return nil, err
		}
		watcher, watchStatus = w, w
	}

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		SidebarFile:     cfg.SidebarFile,
		Index:           memIndex,
		Store:           pinger,
		Watcher:         watchStatus,
		Metrics:         m,
		ReloadTrigger:   reloadTrigger,
		ReloadBurst:     cfg.ReloadBurst,
		ReloadPerMinute: cfg.ReloadPerMinute,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg.ListenPort, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		collector:   collector,
		watcher:     watcher,
	}, nil
}

// Run starts the background jobs and the HTTP server, and blocks until
// SIGINT/SIGTERM or a server error.
func (a *App) Run(parent context.Context) error {
	a.logger.Infof("🚀 Starting docnav %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("docnav %s", version.String())

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		if a.watcher != nil {
			_ = a.watcher.Stop()
		}
		a.closeRedis()
		return fmt.Errorf("failed to start sidebar reloader: %w", err)
	}
	a.logger.Info("sidebar reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			// Periodic and manual reloads still work.
			a.logger.Warn("failed to start sidebar file watcher", logger.Error(err))
		}
	}

	if a.collector != nil {
		if err := a.collector.Start(ctx); err != nil {
			return fmt.Errorf("failed to start revision collector: %w", err)
		}
		a.logger.Info("revision collector started",
			logger.Duration("interval", a.cfg.PruneInterval),
			logger.Int("keep", a.cfg.KeepRevisions))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.reloader.Stop()
	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Warn("failed to stop file watcher", logger.Error(err))
		}
	}
	if a.collector != nil {
		a.collector.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	a.closeRedis()
	if runErr != nil {
		return runErr
	}

	a.logger.Info("✅ docnav stopped cleanly")
	return nil
}

func (a *App) closeRedis() {
	if a.redisClient == nil {
		return
	}
	if err := a.redisClient.Close(); err != nil {
		a.logger.Warn("failed to close redis", logger.Error(err))
		return
	}
	a.logger.Info("✅ Redis closed cleanly")
}
