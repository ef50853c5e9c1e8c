// Package main is the entrypoint for the Hyjain API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/hyjain/hyjain-api/internal/cache"
	"github.com/hyjain/hyjain-api/internal/config"
	"github.com/hyjain/hyjain-api/internal/geo"
	"github.com/hyjain/hyjain-api/internal/handler"
	"github.com/hyjain/hyjain-api/internal/mail"
	"github.com/hyjain/hyjain-api/internal/metrics"
	"github.com/hyjain/hyjain-api/internal/middleware"
	"github.com/hyjain/hyjain-api/internal/model"
	"github.com/hyjain/hyjain-api/internal/outbound"
	"github.com/hyjain/hyjain-api/internal/repository"
	"github.com/hyjain/hyjain-api/internal/server"
	"github.com/hyjain/hyjain-api/internal/service"
	"github.com/hyjain/hyjain-api/internal/upload"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	recorder := metrics.NewPrometheus()
	httpClient := outbound.NewHTTPClient(cfg.OutboundTimeout)

	checks := []handler.Check{{Name: "database", Checker: repo}}
	locatorOpts := []geo.Option{geo.WithHTTPClient(httpClient), geo.WithMetrics(recorder)}

	// Redis only memoizes location lookups, so the service runs without it.
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn(
				"geolocation cache disabled",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			cacheClient = nil
		} else {
			logger.Info("connected to Redis")
			locatorOpts = append(locatorOpts, geo.WithCache(cacheClient))
			checks = append(checks, handler.Check{Name: "redis", Checker: cacheClient, Optional: true})
		}
	}

	images, err := upload.NewCloudinary(upload.CloudinaryConfig{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryFolder,
	})
	if err != nil {
		logger.Error("failed to configure image host", "error", err)
		os.Exit(1)
	}
	files := upload.NewUploadcare(cfg.UploadcareUploadURL, cfg.UploadcarePublicKey, httpClient)
	if cfg.UsesDefaultUploadcareKey() {
		logger.Warn("using the built-in Uploadcare public key; set UPLOADCARE_PUBLIC_KEY to override")
	}

	mailer := mail.NewSMTPDispatcher(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.MailUsername,
		Password: cfg.MailPassword,
		FromName: cfg.MailFromName,
		Timeout:  cfg.OutboundTimeout,
	})
	logger.Info("mail relay configured", "host", cfg.SMTPHost, "port", cfg.SMTPPort, "from", mailer.From())

	locator := geo.NewLocator(geo.Config{
		IPEchoURL: cfg.IPEchoURL,
		LookupURL: cfg.GeoLookupURL,
		CacheTTL:  cfg.GeoCacheTTL,
		Timeout:   cfg.OutboundTimeout,
	}, logger, locatorOpts...)

	catalogService := service.NewCatalogService(repo, recorder)
	userService := service.NewUserService(repo)
	uploadService := service.NewUploadService(images, files, recorder)
	notificationService := service.NewNotificationService(
		locator,
		newComposer(cfg),
		mailer,
		repo,
		logger,
		recorder,
	)

	r := setupRouter(routes{
		base:          handler.New(),
		health:        handler.NewHealthHandler(checks...),
		products:      handler.NewProductHandler(catalogService, logger),
		users:         handler.NewUserHandler(userService, logger),
		uploads:       handler.NewUploadHandler(uploadService, logger),
		notifications: handler.NewNotifyHandler(notificationService, logger),
		metrics:       recorder.Handler(),
	}, cfg, logger)

	srv := server.New(r, server.Config{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("database", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newComposer builds the email composer. Subjects and sign-offs carry the
// brand; the From header carries MAIL_FROM_NAME.
func newComposer(cfg *config.Config) *mail.Composer {
	return mail.NewComposer(cfg.BrandName)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routes bundles the handlers mounted by setupRouter.
type routes struct {
	base          *handler.Handler
	health        *handler.HealthHandler
	products      *handler.ProductHandler
	users         *handler.UserHandler
	uploads       *handler.UploadHandler
	notifications *handler.NotifyHandler
	metrics       http.Handler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(h routes, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	r.Get("/", h.base.Hello)
	r.Get("/healthz", h.health.Healthz)
	r.Get("/readyz", h.health.Readyz)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(cfg.MaxUploadSize))
			r.Post("/upload-image", h.uploads.UploadImage)
			r.Post("/upload-file", h.uploads.UploadFile)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

			r.Post("/notify-signup", h.notifications.Route(model.NotificationSignup))
			r.Post("/notify-login", h.notifications.Route(model.NotificationLogin))
			r.Post("/notify-enquiry", h.notifications.Route(model.NotificationEnquiry))
			r.Post("/notify-feedback", h.notifications.Route(model.NotificationFeedback))
			r.Post("/subscribe", h.notifications.Route(model.NotificationSubscription))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.products.List)
				r.Post("/", h.products.Create)
				r.Put("/{id}", h.products.Update)
				r.Delete("/{id}", h.products.Delete)
			})

			r.Get("/users", h.users.List)
		})
	})

	r.NotFound(h.base.NotFound)
	r.MethodNotAllowed(h.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
