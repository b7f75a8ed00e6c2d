package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Nazarious-ucu/local-forecast/docs"
	"github.com/Nazarious-ucu/local-forecast/internal/config"
	handlers "github.com/Nazarious-ucu/local-forecast/internal/handlers/http"
	"github.com/Nazarious-ucu/local-forecast/internal/repository/sqlite"
	"github.com/Nazarious-ucu/local-forecast/internal/services/cache"
	"github.com/Nazarious-ucu/local-forecast/internal/services/forecast"
	"github.com/Nazarious-ucu/local-forecast/internal/services/httpclient"
	"github.com/Nazarious-ucu/local-forecast/internal/services/locator"
	loggerT "github.com/Nazarious-ucu/local-forecast/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/local-forecast/internal/services/metrics"
	"github.com/Nazarious-ucu/local-forecast/internal/services/weather"
	"github.com/Nazarious-ucu/local-forecast/internal/warmer"
	fLogger "github.com/Nazarious-ucu/local-forecast/pkg/logger"
	"github.com/Nazarious-ucu/local-forecast/pkg/tracing"
)

const (
	shutdownTimeout   = 5 * time.Second
	httpClientTimeout = 8 * time.Second

	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// ServiceContainer holds initialized dependencies for the server.
type ServiceContainer struct {
	WeatherService *weather.ServiceProvider
	Warmer         *warmer.Warmer

	Router *gin.Engine
	Srv    *http.Server
	Db     *sql.DB

	fileLogger     *zap.Logger
	redisClient    *redis.Client
	tracerShutdown tracing.ShutdownFunc
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg       config.Config
	l         zerolog.Logger
	m         *metricsSvc.Metrics
	version   string
	transport http.RoundTripper
}

type Option func(*App)

// WithTransport replaces http.DefaultTransport under the outbound logging transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(a *App) { a.transport = rt }
}

// WithVersion sets the service.version reported with traces.
func WithVersion(v string) Option {
	return func(a *App) { a.version = v }
}

// New prepares a new App with given config, zerolog logger, and metrics.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics, opts ...Option) *App {
	a := &App{cfg: cfg, l: logger, m: met, version: "dev"}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes services, serves HTTP and blocks until ctx is done.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init(ctx)
	if err != nil {
		return err
	}

	if srvContainer.Warmer != nil {
		if err := srvContainer.Warmer.Start(ctx); err != nil {
			a.l.Error().Err(err).Msg("failed to start forecast warmer")
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		a.l.Info().Str("address", a.cfg.ServerAddress()).Msg("HTTP server running")
		if err := srvContainer.Srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping local-forecast")
	case err := <-serveErr:
		if err != nil {
			a.l.Error().Err(err).Msg("HTTP server failed")
			_ = a.Shutdown(srvContainer)
			return err
		}
	}

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown stops the server and the warmer, flushes traces and closes storage.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	a.l.Info().Msg("stopping local-forecast…")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	} else {
		a.l.Info().Msg("HTTP server stopped")
	}

	if srvContainer.Warmer != nil {
		srvContainer.Warmer.Stop()
	}

	if srvContainer.tracerShutdown != nil {
		if err := srvContainer.tracerShutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}

	if srvContainer.redisClient != nil {
		if err := srvContainer.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}

	if err := srvContainer.Db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("db close: %w", err))
	} else {
		a.l.Info().Msg("database closed")
	}

	if err := srvContainer.fileLogger.Sync(); err != nil {
		a.l.Warn().Err(err).Msg("failed to sync file logger")
	}

	a.l.Info().Msg("shutdown complete")
	return errors.Join(errs...)
}

// Init wires storage, outbound clients, the forecast pipeline and the router
// without starting anything.
func (a *App) Init(ctx context.Context) (ServiceContainer, error) {
	a.l.Info().Msgf("initializing local-forecast with config: %+v", a.cfg)

	// undo runs in reverse order when Init fails part way
	var undo []func()
	ok := false
	defer func() {
		if ok {
			return
		}
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}()

	tracerShutdown, err := tracing.InitTracer(a.cfg.Tracing.ZipkinURL, a.cfg.Tracing.ServiceName, a.version)
	if err != nil {
		return ServiceContainer{}, err
	}
	undo = append(undo, func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			a.l.Warn().Err(err).Msg("failed to shutdown tracer")
		}
	})

	db, err := sqlite.CreateSqliteDb(ctx, a.cfg.DB.Source)
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("open database: %w", err)
	}
	undo = append(undo, func() { _ = db.Close() })

	if err := sqlite.InitSqliteDb(ctx, db); err != nil {
		return ServiceContainer{}, fmt.Errorf("migrate database: %w", err)
	}
	snapshots := sqlite.NewSnapshotRepository(db, a.l, sqlite.DefaultKeep)

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger, outbound calls will not be logged")
		fileLogger = zap.NewNop()
	}
	undo = append(undo, func() { _ = fileLogger.Sync() })

	// HTTP client logging
	roundTripper := loggerT.NewRoundTripper(fileLogger, a.transport)
	httpLogClient := &http.Client{Transport: roundTripper, Timeout: httpClientTimeout}

	breakerCfg := httpclient.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}

	locatorHTTP := httpclient.NewTracingClient("ip-api",
		httpclient.NewBreakerClient("ip-api", breakerCfg,
			httpclient.NewRateLimitedClient(httpLogClient, a.cfg.Locator.Rate, a.cfg.Locator.Burst),
		),
	)

	store, redisClient, err := a.responseStore()
	if err != nil {
		return ServiceContainer{}, err
	}
	if redisClient != nil {
		undo = append(undo, func() { _ = redisClient.Close() })
	}
	forecastHTTP := httpclient.NewCachingClient(
		httpclient.NewTracingClient("open-meteo",
			httpclient.NewBreakerClient("open-meteo", breakerCfg,
				httpclient.NewRetryClient(httpLogClient, httpclient.RetryConfig{
					Retries: a.cfg.Retry.Count,
					Backoff: a.cfg.Retry.Backoff,
				}, a.l),
			),
		),
		store,
		a.l,
	)

	loc := locator.NewClient(a.cfg.Locator.URL, locatorHTTP, a.l)
	fc := forecast.NewClientOpenMeteo(a.cfg.Forecast.URL, forecast.DefaultParams(a.cfg.Forecast.Timezone), forecastHTTP, a.l)
	weatherService := weather.NewService(a.l, a.m, loc, fc, weather.WithSnapshots(snapshots))

	var w *warmer.Warmer
	if a.cfg.Warmer.Spec != "" {
		w = warmer.New(weatherService, a.cfg.Warmer.Spec, a.l, a.m)
	}

	router, err := a.router(handlers.NewHandler(weatherService, a.l))
	if err != nil {
		return ServiceContainer{}, err
	}

	httpServer := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	ok = true
	return ServiceContainer{
		WeatherService: weatherService,
		Warmer:         w,
		Router:         router,
		Srv:            httpServer,
		Db:             db,
		fileLogger:     fileLogger,
		redisClient:    redisClient,
		tracerShutdown: tracerShutdown,
	}, nil
}

func (a *App) router(h *handlers.Handler) (*gin.Engine, error) {
	tmpl, err := handlers.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), a.m.HTTPMiddleware())
	router.SetHTMLTemplate(tmpl)

	router.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/weather") })
	router.GET("/weather", h.GetWeatherPage)
	router.GET("/healthz", handlers.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/weather", h.GetWeather)
	}

	router.GET("/metrics", gin.WrapH(a.m.Handler()))
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))

	return router, nil
}

type responseStore interface {
	Set(ctx context.Context, key string, value httpclient.CachedResponse) error
	Get(ctx context.Context, key string) (httpclient.CachedResponse, error)
}

// responseStore picks the cache backend and decorates it with metrics.
func (a *App) responseStore() (responseStore, *redis.Client, error) {
	collector := metricsSvc.NewPromCollector(a.m.Registry)

	switch a.cfg.Cache.Backend {
	case CacheBackendMemory, "":
		mem := cache.NewMemoryClient[httpclient.CachedResponse](a.l, a.cfg.Cache.TTL)
		return cache.NewMetricsDecorator[httpclient.CachedResponse](mem, collector), nil, nil
	case CacheBackendRedis:
		client := newRedisConnection(a.cfg.Redis.Address(), a.cfg.Redis.DbType)
		rc := cache.NewRedisClient[httpclient.CachedResponse](client, a.l, a.cfg.Cache.TTL)
		return cache.NewMetricsDecorator[httpclient.CachedResponse](rc, collector), client, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", a.cfg.Cache.Backend)
	}
}

func newRedisConnection(addr string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, DB: db})
}
