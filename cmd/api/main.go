package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/brightwell-digital/cms-backend/api/controllers"
	"github.com/brightwell-digital/cms-backend/api/middleware"
	"github.com/brightwell-digital/cms-backend/api/routes"
	"github.com/brightwell-digital/cms-backend/internal/audit"
	"github.com/brightwell-digital/cms-backend/internal/auth"
	"github.com/brightwell-digital/cms-backend/internal/moderation"
	"github.com/brightwell-digital/cms-backend/internal/notifier"
	"github.com/brightwell-digital/cms-backend/internal/pagecontent"
	"github.com/brightwell-digital/cms-backend/internal/publish"
	"github.com/brightwell-digital/cms-backend/internal/resources"
	"github.com/brightwell-digital/cms-backend/pkg/config"
	"github.com/brightwell-digital/cms-backend/pkg/db"
	"github.com/brightwell-digital/cms-backend/pkg/db/models"
	"github.com/brightwell-digital/cms-backend/pkg/enums"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
	"github.com/brightwell-digital/cms-backend/pkg/metrics"
	"github.com/brightwell-digital/cms-backend/pkg/migrate"
	"github.com/brightwell-digital/cms-backend/pkg/ratelimit"
	"github.com/brightwell-digital/cms-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	// Redis is optional. Without it the rate limiter falls back to
	// process-local counters and the password reset flow is disabled.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	}

	var limiterStore middleware.CounterStore
	if redisClient != nil && cfg.RateLimit.UseRedis {
		limiterStore = redisClient
	} else {
		memStore := ratelimit.NewMemoryStore()
		limiterStore = memStore
		go func() {
			ticker := time.NewTicker(cfg.RateLimit.Window)
			defer ticker.Stop()
			for range ticker.C {
				memStore.Sweep(cfg.RateLimit.Window)
			}
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	moderationMetrics := metrics.NewModerationMetrics(registry)

	gormDB := dbClient.DB()

	auditService, err := audit.NewService(audit.NewRepository(gormDB), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit service", err)
		os.Exit(1)
	}

	companySvc := mustResourceService[models.Company](logg, gormDB, "name ASC")
	eventSvc := mustResourceService[models.Event](logg, gormDB, "starts_at DESC")
	testimonialSvc := mustResourceService[models.Testimonial](logg, gormDB, "sort_order ASC, created_at DESC")
	partnerSvc := mustResourceService[models.Partner](logg, gormDB, "sort_order ASC, created_at DESC")
	jobSvc := mustResourceService[models.JobOpportunity](logg, gormDB, "created_at DESC")
	mediaSvc := mustResourceService[models.MediaItem](logg, gormDB, "created_at DESC")
	metricSvc := mustResourceService[models.GlobalMetric](logg, gormDB, "name ASC")
	leaderSvc := mustResourceService[models.CorporateLeader](logg, gormDB, "sort_order ASC, created_at DESC")

	pageContentSvc, err := pagecontent.NewService(pagecontent.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create page content service", err)
		os.Exit(1)
	}

	publisher := publish.NewRegistry()
	publisher.Register(enums.EntityCompany, publish.NewResourceHandler(companySvc))
	publisher.Register(enums.EntityEvent, publish.NewResourceHandler(eventSvc))
	publisher.Register(enums.EntityTestimonial, publish.NewResourceHandler(testimonialSvc))
	publisher.Register(enums.EntityPartner, publish.NewResourceHandler(partnerSvc))
	publisher.Register(enums.EntityJobOpportunity, publish.NewResourceHandler(jobSvc))
	publisher.Register(enums.EntityMediaItem, publish.NewResourceHandler(mediaSvc))
	publisher.Register(enums.EntityGlobalMetric, publish.NewResourceHandler(metricSvc))
	publisher.Register(enums.EntityCorporateLeader, publish.NewResourceHandler(leaderSvc))
	publisher.Register(enums.EntityPageContent, publish.NewPageContentHandler(pageContentSvc))

	moderationService, err := moderation.NewService(
		moderation.NewRepository(gormDB),
		publisher,
		auditService,
		moderationMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create moderation service", err)
		os.Exit(1)
	}

	gate, err := moderation.NewGate(moderationService)
	if err != nil {
		logg.Error(context.Background(), "failed to create moderation gate", err)
		os.Exit(1)
	}

	var mailer notifier.Mailer
	if cfg.Sendgrid.APIKey != "" {
		mailer, err = notifier.NewSendgrid(cfg.Sendgrid)
		if err != nil {
			logg.Error(context.Background(), "failed to create sendgrid mailer", err)
			os.Exit(1)
		}
	} else {
		mailer = notifier.NewLogging(logg)
	}

	var resetTokens auth.TokenStore
	if redisClient != nil {
		resetTokens = redisClient
	}

	authService, err := auth.NewService(
		auth.NewRepository(gormDB),
		resetTokens,
		mailer,
		auditService,
		logg,
		cfg.JWT,
		cfg.Password,
		cfg.PasswordReset,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	var cachePinger controllers.Pinger
	if redisClient != nil {
		cachePinger = redisClient
	}

	router := routes.NewRouter(routes.Deps{
		Config:            cfg,
		Logger:            logg,
		DB:                dbClient,
		Cache:             cachePinger,
		Metrics:           moderationMetrics,
		MetricsHandler:    promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		LimiterStore:      limiterStore,
		AuthService:       authService,
		AuditService:      auditService,
		ModerationService: moderationService,
		PageContent:       pageContentSvc,
		Gate:              gate,
		Resources: routes.ResourceControllers{
			Companies:        mustResourceController(logg, enums.EntityCompany, companySvc, gate),
			Events:           mustResourceController(logg, enums.EntityEvent, eventSvc, gate),
			Testimonials:     mustResourceController(logg, enums.EntityTestimonial, testimonialSvc, gate),
			Partners:         mustResourceController(logg, enums.EntityPartner, partnerSvc, gate),
			JobOpportunities: mustResourceController(logg, enums.EntityJobOpportunity, jobSvc, gate),
			MediaItems:       mustResourceController(logg, enums.EntityMediaItem, mediaSvc, gate),
			GlobalMetrics:    mustResourceController(logg, enums.EntityGlobalMetric, metricSvc, gate),
			CorporateLeaders: mustResourceController(logg, enums.EntityCorporateLeader, leaderSvc, gate),
		},
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func mustResourceService[T any, PT interface {
	*T
	resources.Entity
}](logg *logger.Logger, gormDB *gorm.DB, order string) resources.Service[T, PT] {
	svc, err := resources.NewService[T, PT](resources.NewRepository[T, PT](gormDB, order))
	if err != nil {
		logg.Error(context.Background(), "failed to create resource service", err)
		os.Exit(1)
	}
	return svc
}

func mustResourceController[T any, PT interface {
	*T
	resources.Entity
}](logg *logger.Logger, entityType enums.EntityType, svc resources.Service[T, PT], gate *moderation.Gate) *controllers.ResourceController[T, PT] {
	controller, err := controllers.NewResourceController(entityType, svc, gate, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create resource controller", err)
		os.Exit(1)
	}
	return controller
}
