package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lucakurth/techfinder-backend/api/controllers"
	"github.com/lucakurth/techfinder-backend/api/middleware"
	"github.com/lucakurth/techfinder-backend/internal/auth"
	"github.com/lucakurth/techfinder-backend/internal/products"
	"github.com/lucakurth/techfinder-backend/internal/users"
	"github.com/lucakurth/techfinder-backend/internal/wishlist"
	"github.com/lucakurth/techfinder-backend/pkg/auth/session"
	"github.com/lucakurth/techfinder-backend/pkg/config"
	"github.com/lucakurth/techfinder-backend/pkg/logger"
	"github.com/lucakurth/techfinder-backend/pkg/metrics"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DBPinger        controllers.Pinger
	RedisPinger     controllers.Pinger
	RateLimitStore  middleware.RateLimitStore
	SessionChecker  session.Checker
	AuthService     auth.Service
	ProductService  products.Service
	WishlistService wishlist.Service
	UserRepo        *users.Repository
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginIdentifierLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterIdentifierLimit,
	)

	requireAuth := middleware.Auth(cfg.JWT, cfg.Session, deps.SessionChecker, logg)
	optionalAuth := middleware.OptionalAuth(cfg.JWT, cfg.Session, deps.SessionChecker, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DBPinger, deps.RedisPinger))
	})

	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimitStore, logg)).
			Post("/register", controllers.Register(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimitStore, logg)).
			Post("/login", controllers.Login(deps.AuthService, cfg.Session, logg))
		r.With(optionalAuth).
			Post("/logout", controllers.Logout(deps.AuthService, cfg.JWT, cfg.Session, logg))
		r.With(optionalAuth).
			Get("/auth/status", controllers.AuthStatus(deps.AuthService, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.ProductService, logg))
			r.Get("/{id}", controllers.ProductGet(deps.ProductService, logg))

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", controllers.ProductCreate(deps.ProductService, logg))
				r.Put("/{id}", controllers.ProductUpdate(deps.ProductService, logg))
				r.Delete("/{id}", controllers.ProductDelete(deps.ProductService, logg))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/{id}", controllers.UserGet(deps.UserRepo, logg))
			r.Delete("/{id}", controllers.UserDelete(deps.UserRepo, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", controllers.WishlistList(deps.WishlistService, logg))
			r.Get("/{userId}", controllers.WishlistListForUser(deps.WishlistService, logg))
			r.Post("/", controllers.WishlistAdd(deps.WishlistService, logg))
			r.Delete("/", controllers.WishlistRemove(deps.WishlistService, logg))
		})
	})

	return r
}
