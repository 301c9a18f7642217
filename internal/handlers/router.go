package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterConfig carries the cross-cutting pieces the router needs.
type RouterConfig struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	JWTSecret      string

	// Metrics is optional middleware recording per-route metrics.
	Metrics func(http.Handler) http.Handler

	// Health reports whether the service's dependencies are reachable.
	Health func() error
}

// NewRouter assembles the HTTP API.
func NewRouter(
	access *AccessHandler,
	directory *DirectoryHandler,
	catalog *CatalogHandler,
	cfg RouterConfig,
) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(RequestLogger(cfg.Logger))
	}
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics)
	}
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if cfg.Health != nil {
			if err := cfg.Health(); err != nil {
				respondError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(BearerAuth(cfg.JWTSecret))

		r.Route("/access", func(r chi.Router) {
			r.Post("/check", access.Check)
			r.Post("/check-multiple", access.CheckMultiple)
			r.Post("/effective", access.Effective)
			r.Get("/projects", access.LookupProjects)
			r.Get("/components", access.LookupComponents)
			r.Post("/users", access.LookupUsers)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", directory.CreateUser)
			r.Get("/", directory.ListUsers)
			r.Get("/{id}", directory.GetUser)
			r.Delete("/{id}", directory.DeleteUser)
		})

		r.Route("/roles", func(r chi.Router) {
			r.Post("/", directory.CreateRole)
			r.Get("/", directory.ListRoles)
			r.Get("/{name}", directory.GetRole)
			r.Put("/{name}", directory.UpdateRole)
			r.Delete("/{name}", directory.DeleteRole)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", directory.CreateGroup)
			r.Get("/", directory.ListGroups)
			r.Get("/{id}", directory.GetGroup)
			r.Put("/{id}", directory.UpdateGroup)
			r.Delete("/{id}", directory.DeleteGroup)
			r.Put("/{id}/members/{userID}", directory.AddMember)
			r.Delete("/{id}/members/{userID}", directory.RemoveMember)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", catalog.CreateProject)
			r.Get("/", catalog.ListProjects)
			r.Get("/{project}", catalog.GetProject)
			r.Put("/{project}", catalog.UpdateProject)
			r.Delete("/{project}", catalog.DeleteProject)

			r.Route("/{project}/components", func(r chi.Router) {
				r.Post("/", catalog.CreateComponent)
				r.Get("/", catalog.ListComponents)
				r.Get("/{component}", catalog.GetComponent)
				r.Put("/{component}", catalog.UpdateComponent)
				r.Delete("/{component}", catalog.DeleteComponent)
			})
		})

		r.Route("/component-lists", func(r chi.Router) {
			r.Post("/", catalog.CreateComponentList)
			r.Get("/", catalog.ListComponentLists)
			r.Get("/{list}", catalog.GetComponentList)
			r.Put("/{list}", catalog.UpdateComponentList)
			r.Delete("/{list}", catalog.DeleteComponentList)
		})

		r.Route("/languages", func(r chi.Router) {
			r.Post("/", catalog.CreateLanguage)
			r.Get("/", catalog.ListLanguages)
			r.Get("/{code}", catalog.GetLanguage)
			r.Delete("/{code}", catalog.DeleteLanguage)
		})
	})

	return r
}
