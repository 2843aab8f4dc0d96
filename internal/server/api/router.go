package api

import (
	"net/http"

	"github.com/dmitrijs2005/tradeboard/internal/logging"
	"github.com/dmitrijs2005/tradeboard/internal/server/listings"
	"github.com/dmitrijs2005/tradeboard/internal/server/users"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps groups what the router needs.
type Deps struct {
	Users       *users.Service
	Listings    *listings.Service
	Logger      logging.Logger
	RateLimiter *RateLimiter
	// Registry is optional; when set, request counts are recorded and
	// exposed at /metrics.
	Registry *prometheus.Registry
}

// NewRouter builds the full route table.
//
//	GET    /api/categories
//	GET    /api/listings/{category}
//	POST   /api/listings/{category}      (auth)
//	GET    /api/{category}/{id}
//	PUT    /api/posts/{category}/{id}    (auth, owner)
//	DELETE /api/posts/{category}/{id}    (auth, owner)
//	POST   /api/auth/login
//	POST   /api/auth/signup
//	GET    /api/admin/users              (auth, staff)
//	POST   /api/admin/posts/delete       (auth, staff)
func NewRouter(deps Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = logging.Discard()
	}
	h := &handler{users: deps.Users, listings: deps.Listings, log: log}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	if deps.Registry != nil {
		r.Use(newRequestMetrics(deps.Registry).middleware)
	}
	r.Use(requestLogger(log))
	r.Use(deps.RateLimiter.Middleware)

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	authed := requireAuth(deps.Users)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", h.categories)

		r.Route("/listings/{category}", func(r chi.Router) {
			r.Get("/", h.listByCategory)
			r.With(authed).Post("/", h.createListing)
		})

		r.Route("/posts/{category}/{id}", func(r chi.Router) {
			r.Use(authed)
			r.Put("/", h.updateListing)
			r.Delete("/", h.deleteListing)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.login)
			r.Post("/signup", h.signup)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authed, requireStaff)
			r.Get("/users", h.adminUsers)
			r.Post("/posts/delete", h.moderateDelete)
		})

		r.Get("/{category}/{id}", h.getListing)
	})

	return r
}
