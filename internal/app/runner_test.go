package app

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"getmystuff-courier/internal/repository"
	"getmystuff-courier/internal/service/notifications"
)

func TestRun_SeedsAndShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.Port = 0
	cfg.SeedDemoData = true

	c, err := NewContainerBuilder().
		WithConfig(cfg).
		WithRegistry(prometheus.NewRegistry()).
		Build(ctx)
	require.NoError(t, err)

	require.NoError(t, run(c))

	require.NoError(t, c.Invoke(func(reg *repository.TripRegistry, feed *notifications.Service) {
		require.Equal(t, 3, reg.Len())
		require.Equal(t, 2, feed.UnreadCount(context.Background()))
	}))
}

func TestRun_WithoutSeed(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	cfg.Port = 0

	c, err := NewContainerBuilder().
		WithConfig(cfg).
		WithRegistry(prometheus.NewRegistry()).
		Build(ctx)
	require.NoError(t, err)

	require.NoError(t, run(c))
	require.NoError(t, c.Invoke(func(reg *repository.TripRegistry) {
		require.Zero(t, reg.Len())
	}))
}
