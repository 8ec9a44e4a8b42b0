package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/erazemk/anylist/internal/auth"
	"github.com/erazemk/anylist/internal/service"
)

// Services bundles what the router dispatches to.
type Services struct {
	Accounts *service.Accounts
	Items    *service.Items
	Lists    *service.Lists
	Seeder   *service.Seeder
}

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	AllowedOrigins []string
	AuthRateRPS    float64
	AuthRateBurst  int
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(svc Services, opts RouterOptions, log *slog.Logger) http.Handler {
	authHandler := &AuthHandler{Accounts: svc.Accounts}
	usersHandler := &UsersHandler{Accounts: svc.Accounts, Items: svc.Items, Lists: svc.Lists}
	itemsHandler := &ItemsHandler{Items: svc.Items}
	listsHandler := &ListsHandler{Lists: svc.Lists}
	seedHandler := &SeedHandler{Seeder: svc.Seeder}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(LoggingMiddleware(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))

		// Public.
		r.Group(func(r chi.Router) {
			if opts.AuthRateRPS > 0 {
				r.Use(RateLimiter(opts.AuthRateRPS, opts.AuthRateBurst))
			}
			r.Post("/auth/signup", authHandler.SignUp)
			r.Post("/auth/login", authHandler.Login)
		})
		r.Post("/seed", seedHandler.Seed)

		// Authenticated.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(svc.Accounts))

			r.With(RequireOp(auth.OpRevalidate)).Get("/auth/revalidate", authHandler.Revalidate)
			r.With(RequireOp(auth.OpLogout)).Post("/auth/logout", authHandler.Logout)

			r.Route("/users", func(r chi.Router) {
				r.With(RequireOp(auth.OpUsersList)).Get("/", usersHandler.List)
				r.With(RequireOp(auth.OpUsersGet)).Get("/{id}", usersHandler.Get)
				r.With(RequireOp(auth.OpUsersUpdate)).Patch("/{id}", usersHandler.Update)
				r.With(RequireOp(auth.OpUsersBlock)).Post("/{id}/block", usersHandler.Block)
				r.With(RequireOp(auth.OpUsersItems)).Get("/{id}/items", usersHandler.OwnedItems)
				r.With(RequireOp(auth.OpUsersLists)).Get("/{id}/lists", usersHandler.OwnedLists)
			})

			r.Route("/items", func(r chi.Router) {
				r.Use(RequireOp(auth.OpItems))
				r.Get("/", itemsHandler.List)
				r.Post("/", itemsHandler.Create)
				r.Get("/{id}", itemsHandler.Get)
				r.Patch("/{id}", itemsHandler.Update)
				r.Delete("/{id}", itemsHandler.Delete)
				r.Put("/{id}/picture", itemsHandler.UploadPicture)
				r.Get("/{id}/picture", itemsHandler.GetPicture)
			})

			r.Route("/lists", func(r chi.Router) {
				r.Use(RequireOp(auth.OpLists))
				r.Get("/", listsHandler.List)
				r.Post("/", listsHandler.Create)
				r.Get("/{id}", listsHandler.Get)
				r.Patch("/{id}", listsHandler.Update)
				r.Delete("/{id}", listsHandler.Delete)
				r.Get("/{id}/items", listsHandler.Entries)
			})

			r.Route("/list-items", func(r chi.Router) {
				r.Use(RequireOp(auth.OpListItems))
				r.Post("/", listsHandler.CreateEntry)
				r.Get("/{id}", listsHandler.GetEntry)
				r.Patch("/{id}", listsHandler.UpdateEntry)
				r.Delete("/{id}", listsHandler.DeleteEntry)
			})
		})
	})

	return r
}
