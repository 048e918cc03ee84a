package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"getmystuff-courier/internal/http/handlers"
	mw "getmystuff-courier/internal/http/middleware"
	"getmystuff-courier/internal/http/middleware/ratelimit"
	"getmystuff-courier/internal/logx"
)

// Options carries the cross-cutting pieces of the router.
type Options struct {
	Logger      logx.Logger
	Metrics     *mw.HTTPMetrics
	RateLimit   *ratelimit.Middleware
	CORSOrigins []string
	Gatherer    http.Handler
	Timeout     time.Duration
}

// Handlers groups the endpoint handlers mounted by New.
type Handlers struct {
	Base          *handlers.Handlers
	Trips         *handlers.TripHandler
	Search        *handlers.SearchHandler
	Capacity      *handlers.CapacityHandler
	Notifications *handlers.NotificationHandler
	Users         *handlers.UserHandler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h Handlers, opts Options) http.Handler {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	metricsHandler := opts.Gatherer
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Observability(opts.Logger, opts.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(opts.Timeout))
	if len(opts.CORSOrigins) > 0 {
		r.Use(mw.CORS(opts.CORSOrigins))
	}

	r.Get("/ping", h.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", metricsHandler)
	r.NotFound(h.Base.NotFound)
	r.MethodNotAllowed(h.Base.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit.Handler())
		}

		r.Route("/trips", func(r chi.Router) {
			r.Post("/", h.Trips.Post)
			r.Get("/", h.Trips.List)
			r.Get("/{id}", h.Trips.Get)
			r.Get("/{id}/capacity", h.Capacity.Get)
			r.Post("/{id}/allocate", h.Capacity.Allocate)
			r.Post("/{id}/release", h.Capacity.Release)
		})
		r.Get("/search", h.Search.Search)
		r.Get("/categories", h.Search.Categories)

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", h.Users.Get)
			r.Put("/{id}/socials", h.Users.UpdateSocials)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", h.Notifications.List)
			r.Get("/unread-count", h.Notifications.UnreadCount)
			r.Post("/read-all", h.Notifications.MarkAllRead)
			r.Post("/{id}/read", h.Notifications.MarkRead)
		})
	})

	return r
}
