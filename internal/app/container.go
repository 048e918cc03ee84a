package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"getmystuff-courier/internal/config"
	"getmystuff-courier/internal/http/handlers"
	mw "getmystuff-courier/internal/http/middleware"
	"getmystuff-courier/internal/http/middleware/ratelimit"
	"getmystuff-courier/internal/http/pprofserver"
	"getmystuff-courier/internal/http/router"
	"getmystuff-courier/internal/jobs"
	"getmystuff-courier/internal/logx"
	"getmystuff-courier/internal/metrics"
	"getmystuff-courier/internal/repository"
	"getmystuff-courier/internal/service/capacity"
	"getmystuff-courier/internal/service/matching"
	"getmystuff-courier/internal/service/notifications"
	"getmystuff-courier/internal/service/trips"
	"getmystuff-courier/internal/service/users"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	loadConfig func() (*config.Config, error)
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer
	logFatalf  func(string, ...any)
}

// NewContainerBuilder returns a builder wired to the process environment.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		loadConfig: config.Load,
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
		logFatalf:  log.Fatalf,
	}
}

// WithConfig replaces config loading with a fixed config.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithRegistry uses reg for every collector and for /metrics.
func (b *ContainerBuilder) WithRegistry(reg *prometheus.Registry) *ContainerBuilder {
	if reg != nil {
		b.registerer, b.gatherer = reg, reg
	}
	return b
}

// WithLogFatalf sets the function called when the build fails.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...any)) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.Build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// Build builds and returns a new dig container
func (b *ContainerBuilder) Build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStore(container); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if err := registerKafka(container); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, b *ContainerBuilder) error {
	return provideAll(container,
		func() context.Context { return ctx },
		b.loadConfig,
		NewLogger,
		func() prometheus.Registerer { return b.registerer },
		func() prometheus.Gatherer { return b.gatherer },
		provideMetrics,
	)
}

func registerStore(container *dig.Container) error {
	return provideAll(container,
		repository.NewTripRegistry,
		repository.NewNotificationFeed,
		func() *repository.UserDirectory { return repository.NewUserDirectory() },
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(reg *repository.TripRegistry, dir *repository.UserDirectory, pub trips.EventPublisher, m *metrics.Set, logger logx.Logger) *trips.Service {
			return trips.NewService(reg, dir, pub, m.TripsPosted, logger)
		},
		func(reg *repository.TripRegistry, m *metrics.Set, logger logx.Logger) *matching.Engine {
			return matching.NewEngine(reg, m.SearchResults, logger)
		},
		func(reg *repository.TripRegistry, m *metrics.Set, logger logx.Logger) *capacity.Service {
			return capacity.NewService(reg, capacity.VecCounter{Vec: m.CapacityOperations}, logger)
		},
		func(feed *repository.NotificationFeed, m *metrics.Set, logger logx.Logger) *notifications.Service {
			return notifications.NewService(feed, notifications.VecCounter{Vec: m.NotificationsEmitted}, logger)
		},
		func(dir *repository.UserDirectory, logger logx.Logger) *users.Service {
			return users.NewService(dir, logger)
		},
		func(cfg *config.Config, reg *repository.TripRegistry, n *notifications.Service, logger logx.Logger) *jobs.UrgencyWatcher {
			return jobs.NewUrgencyWatcher(reg, n, cfg.UrgencyWatchSpec, logger)
		},
	)
}

type routerIn struct {
	dig.In

	Config        *config.Config
	Logger        logx.Logger
	Gatherer      prometheus.Gatherer
	HTTPMetrics   *mw.HTTPMetrics
	RateLimit     *ratelimit.Middleware
	Base          *handlers.Handlers
	Trips         *handlers.TripHandler
	Search        *handlers.SearchHandler
	Capacity      *handlers.CapacityHandler
	Notifications *handlers.NotificationHandler
	Users         *handlers.UserHandler
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Handlers{
		Base:          in.Base,
		Trips:         in.Trips,
		Search:        in.Search,
		Capacity:      in.Capacity,
		Notifications: in.Notifications,
		Users:         in.Users,
	}, router.Options{
		Logger:      in.Logger,
		Metrics:     in.HTTPMetrics,
		RateLimit:   in.RateLimit,
		CORSOrigins: in.Config.CORSOrigins,
		Gatherer:    promhttp.HandlerFor(in.Gatherer, promhttp.HandlerOpts{}),
	})
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func newPprofServer(cfg *config.Config, logger logx.Logger) pprofOut {
	if !cfg.Pprof.Enabled {
		return pprofOut{}
	}
	return pprofOut{Server: pprofserver.New(pprofserver.Config{
		Addr: cfg.Pprof.Addr,
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	}, logger)}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewTripUsecase,
		handlers.NewTripHandler,
		handlers.NewSearchUsecase,
		handlers.NewTravelerLookup,
		handlers.NewSearchHandler,
		handlers.NewCapacityUsecase,
		handlers.NewCapacityHandler,
		handlers.NewNotificationUsecase,
		handlers.NewNotificationHandler,
		handlers.NewUserUsecase,
		handlers.NewUserHandler,
		mw.NewHTTPMetrics,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
		newPprofServer,
	)
}
