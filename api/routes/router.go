package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightwell-digital/cms-backend/api/controllers"
	"github.com/brightwell-digital/cms-backend/api/middleware"
	"github.com/brightwell-digital/cms-backend/internal/audit"
	"github.com/brightwell-digital/cms-backend/internal/auth"
	"github.com/brightwell-digital/cms-backend/internal/moderation"
	"github.com/brightwell-digital/cms-backend/internal/pagecontent"
	"github.com/brightwell-digital/cms-backend/internal/resources"
	"github.com/brightwell-digital/cms-backend/pkg/config"
	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
	"github.com/brightwell-digital/cms-backend/pkg/metrics"
)

// ResourceControllers groups the per-collection controllers the router
// mounts. One entry per moderated content type except page content,
// which has its own addressing scheme.
type ResourceControllers struct {
	Companies        *controllers.ResourceController[models.Company, *models.Company]
	Events           *controllers.ResourceController[models.Event, *models.Event]
	Testimonials     *controllers.ResourceController[models.Testimonial, *models.Testimonial]
	Partners         *controllers.ResourceController[models.Partner, *models.Partner]
	JobOpportunities *controllers.ResourceController[models.JobOpportunity, *models.JobOpportunity]
	MediaItems       *controllers.ResourceController[models.MediaItem, *models.MediaItem]
	GlobalMetrics    *controllers.ResourceController[models.GlobalMetric, *models.GlobalMetric]
	CorporateLeaders *controllers.ResourceController[models.CorporateLeader, *models.CorporateLeader]
}

// Deps carries everything the router wires together. Optional fields
// (Cache, Metrics handler, limiter store) may be nil.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      controllers.Pinger
	Cache   controllers.Pinger
	Metrics *metrics.ModerationMetrics

	MetricsHandler http.Handler
	LimiterStore   middleware.CounterStore

	AuthService       auth.Service
	AuditService      audit.Service
	ModerationService moderation.Service
	PageContent       pagecontent.Service
	Gate              *moderation.Gate
	Resources         ResourceControllers
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	authPolicy := middleware.NewRateLimitPolicy(cfg.RateLimit.Window, cfg.RateLimit.Limit)
	authLimiter := middleware.RateLimit(authPolicy, deps.LimiterStore, deps.Metrics, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Cache, logg))
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(authLimiter).Post("/login", controllers.Login(deps.AuthService, logg))
		r.With(authLimiter).Post("/password-reset/request", controllers.PasswordResetRequest(deps.AuthService, logg))
		r.Post("/password-reset/confirm", controllers.PasswordResetConfirm(deps.AuthService, logg))
	})

	// The marketing site reads without authenticating.
	r.Route("/api/public/v1", func(r chi.Router) {
		mountPublicResource(r, "/companies", deps.Resources.Companies)
		mountPublicResource(r, "/events", deps.Resources.Events)
		mountPublicResource(r, "/testimonials", deps.Resources.Testimonials)
		mountPublicResource(r, "/partners", deps.Resources.Partners)
		mountPublicResource(r, "/job-opportunities", deps.Resources.JobOpportunities)
		mountPublicResource(r, "/media-items", deps.Resources.MediaItems)
		mountPublicResource(r, "/global-metrics", deps.Resources.GlobalMetrics)
		mountPublicResource(r, "/corporate-leaders", deps.Resources.CorporateLeaders)

		r.Get("/pages/{page}", controllers.PageContentList(deps.PageContent, logg))
		r.Get("/pages/{page}/{section}", controllers.PageContentGet(deps.PageContent, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		mountModeratedResource(r, "/companies", deps.Resources.Companies)
		mountModeratedResource(r, "/events", deps.Resources.Events)
		mountModeratedResource(r, "/testimonials", deps.Resources.Testimonials)
		mountModeratedResource(r, "/partners", deps.Resources.Partners)
		mountModeratedResource(r, "/job-opportunities", deps.Resources.JobOpportunities)
		mountModeratedResource(r, "/media-items", deps.Resources.MediaItems)
		mountModeratedResource(r, "/global-metrics", deps.Resources.GlobalMetrics)
		mountModeratedResource(r, "/corporate-leaders", deps.Resources.CorporateLeaders)

		r.Put("/page-content", controllers.PageContentUpsert(deps.PageContent, deps.Gate, logg))
		r.Delete("/page-content/{id}", controllers.PageContentDelete(deps.Gate, logg))

		r.Route("/pending-changes", func(r chi.Router) {
			r.Get("/my-submissions", controllers.PendingChangesMine(deps.ModerationService, logg))
			r.Get("/{id}", controllers.PendingChangeGet(deps.ModerationService, logg))

			// Only admins browse the full queue and settle or prune it.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))
				r.Get("/", controllers.PendingChangesList(deps.ModerationService, logg))
				r.Get("/type/{entityType}", controllers.PendingChangesListByType(deps.ModerationService, logg))
				r.Post("/{id}/approve", controllers.PendingChangeApprove(deps.ModerationService, logg))
				r.Post("/{id}/reject", controllers.PendingChangeReject(deps.ModerationService, logg))
				r.Delete("/{id}", controllers.PendingChangeDelete(deps.ModerationService, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))
		r.Get("/audit-logs", controllers.AuditLogsList(deps.AuditService, logg))
	})

	return r
}

func mountPublicResource[T any, PT interface {
	*T
	resources.Entity
}](r chi.Router, path string, c *controllers.ResourceController[T, PT]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", c.List)
		r.Get("/{id}", c.Get)
	})
}

func mountModeratedResource[T any, PT interface {
	*T
	resources.Entity
}](r chi.Router, path string, c *controllers.ResourceController[T, PT]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", c.List)
		r.Get("/{id}", c.Get)
		r.Post("/", c.Create)
		r.Put("/{id}", c.Update)
		r.Delete("/{id}", c.Delete)
	})
}
