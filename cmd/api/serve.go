package main

import (
	"context"
	"database/sql"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"storeadmin/docs"
	"storeadmin/internal/auth"
	"storeadmin/internal/cache"
	"storeadmin/internal/config"
	"storeadmin/internal/database"
	"storeadmin/internal/database/migration"
	handlers "storeadmin/internal/http/handler"
	"storeadmin/internal/http/middleware"
	"storeadmin/internal/logger"
	"storeadmin/internal/mail"
	"storeadmin/internal/otel"
	"storeadmin/internal/repository/postgres"
	"storeadmin/internal/scheduler"
	"storeadmin/internal/service"
	"storeadmin/internal/storage"
)

// bodyLimit leaves room for multipart framing around a 10 MiB document.
const bodyLimit = 11 << 20

// services is the wired application layer shared by serve and seed.
type services struct {
	auth          service.AuthService
	dashboard     service.DashboardService
	products      service.ProductService
	orders        service.OrderService
	users         service.UserService
	reviews       service.ReviewService
	notifications service.NotificationService
	organizations service.OrganizationService
	documents     service.DocumentService
	notes         service.NoteService
	memberships   service.MembershipService
	promotions    service.PromotionService
}

func newServices(cfg *config.AppConfig, db *sql.DB, store storage.Storage, c cache.Client, tokens service.TokenIssuer, mailer mail.Sender) *services {
	users := postgres.NewUserPostgres(db)
	products := postgres.NewProductPostgres(db)
	promotions := postgres.NewPromotionPostgres(db)
	orgs := postgres.NewOrganizationPostgres(db)

	s := &services{
		auth:        service.NewAuthService(users, tokens),
		dashboard:   service.NewDashboardService(postgres.NewStatsPostgres(db), c, cfg.Cache.DashboardTTL),
		products:    service.NewProductService(store, products),
		users:       service.NewUserService(users),
		reviews:     service.NewReviewService(postgres.NewReviewPostgres(db), products),
		documents:   service.NewDocumentService(store, postgres.NewDocumentPostgres(db), orgs),
		notes:       service.NewNoteService(postgres.NewNotePostgres(db), orgs),
		memberships: service.NewMembershipService(postgres.NewMembershipPostgres(db)),
		promotions:  service.NewPromotionService(promotions),
	}
	s.notifications = service.NewNotificationService(postgres.NewNotificationPostgres(db), c, cfg.Cache.UnreadTTL)
	s.orders = service.NewOrderService(postgres.NewOrderPostgres(db), products, promotions, s.notifications, s.dashboard)
	s.organizations = service.NewOrganizationService(orgs, postgres.NewInvitationPostgres(db), users, mailer, s.notifications, cfg.PublicURL)
	return s
}

func runServe(parent context.Context) error {
	cfg, log := bootstrap()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.AppName, log.Named("otel"))
	if err != nil {
		return fail(log, "failed to initialize tracing", err)
	}

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		return fail(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return fail(log, "failed to migrate database", err)
	}

	store, err := storage.NewMinIO(cfg.MinIO, log)
	if err != nil {
		return fail(log, "failed to initialize object storage", err)
	}

	cacheClient, err := cache.New(cfg.Redis, cfg.Cache, log)
	if err != nil {
		return fail(log, "failed to initialize cache", err)
	}
	defer cacheClient.Close()

	tokens, err := auth.NewTokenIssuer(cfg.Auth)
	if err != nil {
		return fail(log, "failed to initialize token issuer", err)
	}

	svc := newServices(cfg, db, store, cacheClient, tokens, mail.New(cfg.SMTP, log))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fail(log, "failed to register metrics", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(cfg.Location()))
	app.Use(metrics.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:            db,
		Tokens:        tokens,
		Limiter:       middleware.NewRateLimiter(float64(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst),
		Gatherer:      reg,
		Auth:          svc.auth,
		Dashboard:     svc.dashboard,
		Products:      svc.products,
		Orders:        svc.orders,
		Users:         svc.users,
		Reviews:       svc.reviews,
		Notifications: svc.notifications,
		Organizations: svc.organizations,
		Documents:     svc.documents,
		Notes:         svc.notes,
		Memberships:   svc.memberships,
		Promotions:    svc.promotions,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(log.Named("scheduler"),
			scheduler.Jobs(cfg.Scheduler, svc.organizations, svc.memberships, svc.promotions)...)
		if err != nil {
			return fail(log, "failed to configure scheduler", err)
		}
		sched.Start()
	}

	listenErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("http server listening", zap.String("addr", addr))
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return fail(log, "failed to start server", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
	return nil
}
