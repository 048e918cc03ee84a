package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"getmystuff-courier/internal/metrics"
)

// provideMetrics registers the domain collectors. Collectors that are already
// registered are reused, so building a second container in one process works.
func provideMetrics(reg prometheus.Registerer) (*metrics.Set, error) {
	s := metrics.NewSet()
	var err error
	if s.RateLimitExceeded, err = register(reg, "rate_limit_exceeded_total", s.RateLimitExceeded); err != nil {
		return nil, err
	}
	if s.PublishRetries, err = register(reg, "trip_event_publish_retries_total", s.PublishRetries); err != nil {
		return nil, err
	}
	if s.TripsPosted, err = register(reg, "trips_posted_total", s.TripsPosted); err != nil {
		return nil, err
	}
	if s.CapacityOperations, err = register(reg, "capacity_operations_total", s.CapacityOperations); err != nil {
		return nil, err
	}
	if s.SearchResults, err = register(reg, "search_results", s.SearchResults); err != nil {
		return nil, err
	}
	if s.NotificationsEmitted, err = register(reg, "notifications_emitted_total", s.NotificationsEmitted); err != nil {
		return nil, err
	}
	return s, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, name string, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("register %s: %w", name, err)
}
