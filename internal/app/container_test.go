package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"getmystuff-courier/internal/apperr"
	"getmystuff-courier/internal/config"
	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/repository"
	"getmystuff-courier/internal/service/capacity"
	"getmystuff-courier/internal/service/notifications"
	"getmystuff-courier/internal/service/trips"
	"getmystuff-courier/internal/transport/kafka"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             8080,
		LogLevel:         "error",
		CORSOrigins:      config.DefaultCORSOrigins(),
		UrgencyWatchSpec: "@every 1m",
		Publish:          config.DefaultPublish(),
		RateLimit:        config.DefaultRateLimit(),
	}
}

func buildTestContainer(t *testing.T, cfg *config.Config) *dig.Container {
	t.Helper()

	c, err := NewContainerBuilder().
		WithConfig(cfg).
		WithRegistry(prometheus.NewRegistry()).
		Build(context.Background())
	require.NoError(t, err)
	return c
}

func TestBuild_ProvidesServerAndRouter(t *testing.T) {
	t.Parallel()

	c := buildTestContainer(t, testConfig())

	err := c.Invoke(func(srv *http.Server, pub trips.EventPublisher, consumer *kafka.Consumer, producer *kafka.Producer) {
		require.Equal(t, ":8080", srv.Addr)
		require.Greater(t, srv.ReadHeaderTimeout, time.Duration(0))
		require.Greater(t, srv.WriteTimeout, time.Duration(0))
		require.Greater(t, srv.IdleTimeout, time.Duration(0))

		require.IsType(t, trips.NopPublisher{}, pub)
		require.Nil(t, consumer)
		require.Nil(t, producer)

		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/nobody", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
	require.NoError(t, err)
}

func TestBuild_PprofServerIsOptional(t *testing.T) {
	t.Parallel()

	type pprofIn struct {
		dig.In
		Server *http.Server `name:"pprof_server" optional:"true"`
	}

	c := buildTestContainer(t, testConfig())
	require.NoError(t, c.Invoke(func(in pprofIn) {
		require.Nil(t, in.Server)
	}))

	cfg := testConfig()
	cfg.Pprof = config.PprofConfig{Enabled: true, Addr: "127.0.0.1:0"}
	c = buildTestContainer(t, cfg)
	require.NoError(t, c.Invoke(func(in pprofIn) {
		require.NotNil(t, in.Server)
		require.Equal(t, "127.0.0.1:0", in.Server.Addr)
	}))
}

func TestBuild_ConfigErrorIsReturned(t *testing.T) {
	t.Parallel()

	b := NewContainerBuilder().WithRegistry(prometheus.NewRegistry())
	b.loadConfig = func() (*config.Config, error) { return nil, apperr.ErrInvalid }

	c, err := b.Build(context.Background())
	require.NoError(t, err, "providers are lazy")
	err = c.Invoke(func(*http.Server) {})
	require.ErrorIs(t, dig.RootCause(err), apperr.ErrInvalid)
}

func TestMustBuild_CallsFatalOnError(t *testing.T) {
	t.Parallel()

	var called bool
	b := NewContainerBuilder().
		WithConfig(testConfig()).
		WithRegistry(prometheus.NewRegistry()).
		WithLogFatalf(func(string, ...any) { called = true })

	require.NotNil(t, b.MustBuild(context.Background()))
	require.False(t, called)
}

func TestProvideMetrics_ReusesRegisteredCollectors(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	first, err := provideMetrics(reg)
	require.NoError(t, err)
	second, err := provideMetrics(reg)
	require.NoError(t, err)

	second.TripsPosted.Inc()
	require.Equal(t, float64(1), testutil.ToFloat64(first.TripsPosted))
}

func TestProvideMetrics_ConflictingCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trips_posted_total",
		Help: "Total number of trips accepted into the registry",
	})))

	_, err := provideMetrics(reg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "register trips_posted_total")
}

func TestNotificationIngest_EmitsIntoFeed(t *testing.T) {
	t.Parallel()

	feed := repository.NewNotificationFeed()
	svc := notifications.NewService(feed, nil, nil)
	h := notificationIngest(svc)

	require.NoError(t, h(context.Background(), domain.Notification{
		Type:  domain.NotificationSystem,
		Title: "Maintenance",
	}))
	require.ErrorIs(t, h(context.Background(), domain.Notification{Type: "spam", Title: "x"}), apperr.ErrInvalid)
	require.Equal(t, 1, svc.UnreadCount(context.Background()))

	redelivered := domain.Notification{ID: "evt-1", Type: domain.NotificationTravel, Title: "New Trip Match!"}
	require.NoError(t, h(context.Background(), redelivered))
	require.NoError(t, h(context.Background(), redelivered))
	require.Len(t, svc.List(context.Background()), 2)
}

func TestSeedDemo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reg := repository.NewTripRegistry()
	users := repository.NewUserDirectory()
	tripSvc := trips.NewService(reg, users, nil, nil, nil)
	ledger := capacity.NewService(reg, nil, nil)
	feed := notifications.NewService(repository.NewNotificationFeed(), nil, nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, seedDemo(ctx, now, users, tripSvc, ledger, feed))
	require.Equal(t, 3, reg.Len())
	require.Equal(t, 2, feed.UnreadCount(ctx))

	mine, err := tripSvc.ListByTraveler(ctx, "priyesha")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Mumbai", mine[0].From)
	require.Equal(t, 8.0, mine[0].RemainingKg)
	require.Equal(t, domain.TierUrgent, domain.Classify(mine[0].DepartureAt, now).Tier)

	u, err := users.Get("ketan")
	require.NoError(t, err)
	require.True(t, u.IsVerified)
}
