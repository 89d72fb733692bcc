package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/apto-jkhatri/it-asset-management-app/internal/config"
	"github.com/apto-jkhatri/it-asset-management-app/internal/handlers"
	"github.com/apto-jkhatri/it-asset-management-app/internal/middleware"
	"github.com/apto-jkhatri/it-asset-management-app/internal/models"
	"github.com/apto-jkhatri/it-asset-management-app/internal/repository/postgres"
	"github.com/apto-jkhatri/it-asset-management-app/internal/service"
)

func New(log zerolog.Logger, db *pgxpool.Pool, cfg config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(log, cfg))

	// Health
	r.Get("/healthz", handlers.Health())

	// Repos + services + handlers
	assetRepo := postgres.NewAssetRepo(db)
	employeeRepo := postgres.NewEmployeeRepo(db)
	assignmentRepo := postgres.NewAssignmentRepo(db)
	maintenanceRepo := postgres.NewMaintenanceRepo(db)
	requestRepo := postgres.NewRequestRepo(db)
	userRepo := postgres.NewUserRepo(db)

	authSvc := service.NewAuthService(userRepo, cfg.SessionSecret)

	ah := handlers.NewAuthHTTP(authSvc, userRepo)
	uh := handlers.NewUserHTTP(authSvc, userRepo)
	ash := handlers.NewAssetHTTP(assetRepo)
	eh := handlers.NewEmployeeHTTP(employeeRepo)
	agh := handlers.NewAssignmentHTTP(assignmentRepo)
	mh := handlers.NewMaintenanceHTTP(maintenanceRepo)
	rh := handlers.NewRequestHTTP(requestRepo, userRepo)
	rph := handlers.NewReportsHTTP(assetRepo, requestRepo)

	admin := middleware.RequireRoles(models.RoleAdmin)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", ah.Login())
			r.With(middleware.RequireAuth).Post("/logout", ah.Logout())
			r.With(middleware.RequireAuth).Get("/me", ah.Me())
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/assets", func(r chi.Router) {
				r.Get("/", ash.List())
				r.With(admin).Post("/", ash.Upsert())
				r.With(admin).Delete("/{id}", ash.Delete())
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(admin)
				r.Get("/", eh.List())
				r.Post("/", eh.Upsert())
				r.Delete("/{id}", eh.Delete())
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Use(admin)
				r.Get("/", agh.List())
				r.Post("/", agh.Upsert())
			})

			r.Route("/maintenance", func(r chi.Router) {
				r.Use(admin)
				r.Get("/", mh.List())
				r.Post("/", mh.Upsert())
			})

			r.Route("/requests", func(r chi.Router) {
				r.Get("/", rh.List())
				r.Post("/", rh.Upsert())
				r.Route("/{id}/messages", func(r chi.Router) {
					r.Get("/", rh.Messages())
					r.Post("/", rh.AddMessage())
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.With(admin).Get("/", uh.List())
				r.With(admin).Post("/", uh.Create())
				r.With(admin).Delete("/{id}", uh.Delete())
				r.With(middleware.RequireSelfOrRoles(models.RoleAdmin)).Put("/{id}/password", uh.ResetPassword())
			})

			r.With(admin).Get("/reports/summary", rph.Summary())
		})
	})

	return r
}
