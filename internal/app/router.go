package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/storefront-admin/storefront-admin/internal/auth"
	"github.com/storefront-admin/storefront-admin/internal/categories"
	"github.com/storefront-admin/storefront-admin/internal/observability"
	"github.com/storefront-admin/storefront-admin/internal/orders"
	"github.com/storefront-admin/storefront-admin/internal/products"
	"github.com/storefront-admin/storefront-admin/internal/rbac"
	"github.com/storefront-admin/storefront-admin/internal/shared"
	"github.com/storefront-admin/storefront-admin/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	AuthHandler       *auth.Handler
	AuthService       *auth.Service
	CategoriesHandler *categories.Handler
	ProductsHandler   *products.Handler
	OrdersHandler     *orders.Handler
	UsersHandler      *users.Handler
	RBACMiddleware    rbac.Middleware
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with storefront defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	if !InTestMode() {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/admin", func(r chi.Router) {
		r.Use(params.AuthService.Middleware)
		r.Use(params.RBACMiddleware.RequireAny(shared.ProfileAdmin))
		params.mountCatalog(r)
	})

	r.Route("/manager", func(r chi.Router) {
		params.AuthHandler.MountRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(params.AuthService.Middleware)
			r.Use(params.RBACMiddleware.RequireAny(shared.ProfileAdmin, shared.ProfileManager))
			params.mountCatalog(r)
		})
	})

	if params.Config != nil && params.Config.ImagesDir != "" {
		fileServer := http.StripPrefix("/imagens/produtos/", http.FileServer(http.Dir(params.Config.ImagesDir)))
		r.Handle("/imagens/produtos/*", staticCacheHandler(fileServer))
	}

	return r
}

func (p RouterParams) mountCatalog(r chi.Router) {
	if p.CategoriesHandler != nil {
		p.CategoriesHandler.MountRoutes(r)
	}
	if p.ProductsHandler != nil {
		p.ProductsHandler.MountRoutes(r)
	}
	if p.OrdersHandler != nil {
		p.OrdersHandler.MountRoutes(r)
	}
	if p.UsersHandler != nil {
		p.UsersHandler.MountRoutes(r)
	}
}

// staticCacheHandler wraps a file server with Cache-Control headers.
// Product images are rewritten in place, so browsers revalidate after a minute.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=60")
		next.ServeHTTP(w, r)
	})
}
