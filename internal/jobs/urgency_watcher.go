package jobs

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"getmystuff-courier/internal/domain"
	"getmystuff-courier/internal/logx"
)

// DefaultUrgencySpec runs the watcher once a minute.
const DefaultUrgencySpec = "@every 1m"

type tripSource interface {
	All() iter.Seq[domain.Trip]
}

type emitter interface {
	Emit(ctx context.Context, n domain.Notification) (domain.Notification, error)
}

// UrgencyWatcher emits one system notification per trip when it becomes critical.
type UrgencyWatcher struct {
	trips    tripSource
	notifier emitter
	cron     *cron.Cron
	spec     string
	logger   logx.Logger
	now      func() time.Time

	mu       sync.Mutex
	notified map[domain.TripID]struct{}
}

// NewUrgencyWatcher creates a watcher. An empty spec falls back to DefaultUrgencySpec.
func NewUrgencyWatcher(trips tripSource, notifier emitter, spec string, logger logx.Logger) *UrgencyWatcher {
	if spec == "" {
		spec = DefaultUrgencySpec
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &UrgencyWatcher{
		trips:    trips,
		notifier: notifier,
		cron:     cron.New(),
		spec:     spec,
		logger:   logger.With(logx.String("component", "urgency_watcher")),
		now:      func() time.Time { return time.Now().UTC() },
		notified: make(map[domain.TripID]struct{}),
	}
}

// SetNowForTest overrides the watcher clock.
func (w *UrgencyWatcher) SetNowForTest(fn func() time.Time) {
	if fn != nil {
		w.now = fn
	}
}

// Start schedules the watcher.
func (w *UrgencyWatcher) Start() error {
	if _, err := w.cron.AddFunc(w.spec, func() { w.Tick(context.Background()) }); err != nil {
		return fmt.Errorf("schedule urgency watcher: %w", err)
	}
	w.cron.Start()
	w.logger.Info("urgency watcher started", logx.String("spec", w.spec))
	return nil
}

// Stop waits for a running tick to finish or ctx to expire.
func (w *UrgencyWatcher) Stop(ctx context.Context) {
	done := w.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	w.logger.Info("urgency watcher stopped")
}

// Tick classifies every trip once and returns how many notifications were emitted.
func (w *UrgencyWatcher) Tick(ctx context.Context) int {
	now := w.now()
	emitted := 0
	for t := range w.trips.All() {
		if domain.Classify(t.DepartureAt, now).Tier != domain.TierCritical {
			continue
		}
		if !w.claim(t.ID) {
			continue
		}
		_, err := w.notifier.Emit(ctx, domain.Notification{
			Type:    domain.NotificationSystem,
			Title:   "Trip leaving soon",
			Message: fmt.Sprintf("The trip from %s to %s departs in under 3 hours.", t.From, t.To),
		})
		if err != nil {
			w.release(t.ID)
			w.logger.Error("emit leaving soon notification", logx.String("trip_id", string(t.ID)), logx.Err(err))
			continue
		}
		emitted++
	}
	return emitted
}

func (w *UrgencyWatcher) claim(id domain.TripID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.notified[id]; ok {
		return false
	}
	w.notified[id] = struct{}{}
	return true
}

func (w *UrgencyWatcher) release(id domain.TripID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.notified, id)
}
