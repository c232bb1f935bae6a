package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/urbavisu/urbavisu-api/internal/config"
	"github.com/urbavisu/urbavisu-api/internal/domain/admin"
	"github.com/urbavisu/urbavisu-api/internal/domain/auth"
	"github.com/urbavisu/urbavisu-api/internal/domain/credit"
	"github.com/urbavisu/urbavisu-api/internal/domain/creditpack"
	"github.com/urbavisu/urbavisu-api/internal/domain/dashboard"
	"github.com/urbavisu/urbavisu-api/internal/domain/lookup"
	"github.com/urbavisu/urbavisu-api/internal/domain/order"
	"github.com/urbavisu/urbavisu-api/internal/domain/tool"
	"github.com/urbavisu/urbavisu-api/internal/domain/translation"
	"github.com/urbavisu/urbavisu-api/internal/domain/user"
	"github.com/urbavisu/urbavisu-api/internal/middleware"
	"github.com/urbavisu/urbavisu-api/internal/pkg/database"
	"github.com/urbavisu/urbavisu-api/internal/pkg/i18n"
	"github.com/urbavisu/urbavisu-api/internal/pkg/jwt"
	"github.com/urbavisu/urbavisu-api/internal/pkg/logger"
	"github.com/urbavisu/urbavisu-api/internal/pkg/metrics"
	"github.com/urbavisu/urbavisu-api/internal/pkg/payment"
	pkgresponse "github.com/urbavisu/urbavisu-api/internal/pkg/response"
	"github.com/urbavisu/urbavisu-api/internal/pkg/storage"
)

// handlers bundles everything the router mounts.
type handlers struct {
	auth         *auth.Handler
	credits      *credit.Handler
	packs        *creditpack.Handler
	tools        *tool.Handler
	lookup       *lookup.Handler
	orders       *order.Handler
	translations *translation.Handler
	admin        *admin.Handler
	dashboard    *dashboard.Handler

	authMiddleware  func(http.Handler) http.Handler
	adminMiddleware func(http.Handler) http.Handler
	defaultLocale   i18n.Locale
	allowedOrigins  []string
}

// stores are the backing dependencies the services are built on.
type stores struct {
	users        user.Repository
	credits      credit.Repository
	tools        tool.Repository
	packs        creditpack.Repository
	orders       order.Repository
	translations translation.Repository
	routes       admin.RouteRepository
	tx           database.Transactor
	revocations  auth.RevocationStore
	searches     lookup.SessionStore
	receipts     storage.Storage
	payments     payment.Provider
}

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting URBA visu API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if cfg.RunMigrations {
		if err := database.Migrate(db.DB); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-process session stores")
	}
	defer database.CloseRedis(redisClient)

	ctx := context.Background()

	receipts, err := newReceiptStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize receipt storage")
	}

	payments := payment.NewRegistry()
	payments.Register(payment.NewSimulated(cfg.PaymentSimulatedDelay))
	provider, err := payments.Get(payment.ProviderSimulated)
	if err != nil {
		log.Fatal().Err(err).Msg("Payment provider missing")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	revocations, searchSessions := sessionStores(redisClient)

	h := newHandlers(ctx, cfg, stores{
		users:        user.NewRepository(db),
		credits:      credit.NewRepository(db),
		tools:        tool.NewRepository(db),
		packs:        creditpack.NewRepository(db),
		orders:       order.NewRepository(db),
		translations: translation.NewRepository(db),
		routes:       admin.NewRouteRepository(db),
		tx:           database.NewTransactor(db),
		revocations:  revocations,
		searches:     searchSessions,
		receipts:     receipts,
		payments:     provider,
	}, jwtService)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func newReceiptStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.UseR2() {
		log.Info().Str("bucket", cfg.R2BucketName).Msg("Storing receipts in R2")
		return storage.NewR2Storage(ctx, storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
	}
	log.Info().Str("dir", cfg.ReceiptsLocalDir).Msg("Storing receipts on local disk")
	return storage.NewLocalStorage(cfg.ReceiptsLocalDir, cfg.ReceiptsBaseURL)
}

func newHandlers(ctx context.Context, cfg *config.Config, st stores, jwtService *jwt.Service) *handlers {
	localizer := translation.NewLocalizer(st.translations)
	if err := localizer.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("Translation table not loaded, using built-in messages")
	}

	authService := auth.NewService(st.users, jwtService, st.revocations)
	creditService := credit.NewService(st.credits, st.tx)
	toolService := tool.NewService(st.tools)
	packService := creditpack.NewService(st.packs, creditService, st.payments, st.receipts)
	lookupService := lookup.NewService(lookup.NewSimulatedResolver(cfg.SearchDelay), st.searches, cfg.SearchSessionTTL)
	orderService := order.NewService(st.orders, toolService, lookupService, creditService, st.tx)
	translationService := translation.NewService(st.translations, localizer)
	adminService := admin.NewService(st.users, creditService, authService, st.routes, st.tx, cfg.WelcomeBonusCredits)
	dashboardService := dashboard.NewService(st.users, st.orders, creditService)

	return &handlers{
		auth:         auth.NewHandler(authService, localizer),
		credits:      credit.NewHandler(creditService, localizer),
		packs:        creditpack.NewHandler(packService, localizer),
		tools:        tool.NewHandler(toolService, localizer),
		lookup:       lookup.NewHandler(lookupService, localizer),
		orders:       order.NewHandler(orderService, localizer),
		translations: translation.NewHandler(translationService, localizer),
		admin:        admin.NewHandler(adminService, localizer),
		dashboard:    dashboard.NewHandler(dashboardService, localizer),

		authMiddleware:  middleware.Auth(jwtService, authService),
		adminMiddleware: middleware.RequireAdmin(st.users),
		defaultLocale:   i18n.Parse(cfg.DefaultLocale, i18n.Default),
		allowedOrigins:  cfg.AllowedOrigins,
	}
}

// sessionStores picks Redis-backed stores, or in-process ones when Redis is off.
func sessionStores(client *redis.Client) (auth.RevocationStore, lookup.SessionStore) {
	if client == nil {
		return auth.NewMemoryRevocations(), lookup.NewMemoryStore()
	}
	return auth.NewRedisRevocations(client), lookup.NewRedisStore(client)
}

func newRouter(h *handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(h.allowedOrigins))
	r.Use(middleware.Locale(h.defaultLocale))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", h.auth.Routes(h.authMiddleware))
		r.Mount("/credit-packs", h.packs.Routes(h.authMiddleware))
		r.Get("/tools", h.tools.List)
		r.Get("/translations", h.translations.List)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)
			r.Mount("/credits", h.credits.Routes())
			r.Post("/search", h.lookup.Search)
			r.Mount("/orders", h.orders.Routes())
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(h.authMiddleware)
		r.Use(h.adminMiddleware)

		h.dashboard.AdminRoutes(r)
		h.admin.Routes(r)
		h.orders.AdminRoutes(r)
		h.tools.AdminRoutes(r)
		h.packs.AdminRoutes(r)
		h.translations.AdminRoutes(r)
	})

	return r
}
