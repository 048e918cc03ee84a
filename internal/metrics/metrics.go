package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewPublishRetriesTotal returns a counter of retry attempts made when publishing trip events
func NewPublishRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trip_event_publish_retries_total",
		Help: "Total number of retry attempts performed when publishing trip events",
	})
}

// NewTripsPostedTotal returns a counter of trips accepted into the registry
func NewTripsPostedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trips_posted_total",
		Help: "Total number of trips accepted into the registry",
	})
}

// NewCapacityOperationsTotal returns a counter of capacity operations by operation and outcome
func NewCapacityOperationsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "capacity_operations_total",
		Help: "Capacity allocate/release operations by outcome",
	}, []string{"op", "outcome"})
}

// NewSearchResultsHistogram returns a histogram of result counts per search
func NewSearchResultsHistogram() prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "search_results",
		Help:    "Number of matches returned per search",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
}

// NewNotificationsEmittedTotal returns a counter of feed events by type
func NewNotificationsEmittedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_emitted_total",
		Help: "Notifications appended to the feed by type",
	}, []string{"type"})
}

// Set groups the domain collectors so they can be registered together.
type Set struct {
	RateLimitExceeded    prometheus.Counter
	PublishRetries       prometheus.Counter
	TripsPosted          prometheus.Counter
	CapacityOperations   *prometheus.CounterVec
	SearchResults        prometheus.Histogram
	NotificationsEmitted *prometheus.CounterVec
}

// NewSet creates all collectors.
func NewSet() *Set {
	return &Set{
		RateLimitExceeded:    NewRateLimitExceededTotal(),
		PublishRetries:       NewPublishRetriesTotal(),
		TripsPosted:          NewTripsPostedTotal(),
		CapacityOperations:   NewCapacityOperationsTotal(),
		SearchResults:        NewSearchResultsHistogram(),
		NotificationsEmitted: NewNotificationsEmittedTotal(),
	}
}

// Register adds every collector to reg.
func (s *Set) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		s.RateLimitExceeded, s.PublishRetries, s.TripsPosted,
		s.CapacityOperations, s.SearchResults, s.NotificationsEmitted,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
