package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"souveno-backend/internal/admin"
	"souveno-backend/internal/auth"
	"souveno-backend/internal/cache"
	"souveno-backend/internal/config"
	"souveno-backend/internal/contact"
	"souveno-backend/internal/db"
	"souveno-backend/internal/middleware"
	"souveno-backend/internal/notifications"
	"souveno-backend/internal/schedule"
	"souveno-backend/internal/transport"
	"souveno-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected", slog.String("db", cfg.MongoDB))
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "souveno-backend",
		}
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.AdminEmail, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	}

	val := validation.New()

	contactRepo := contact.NewRepository(cols.Contacts)
	var contactNotifier contact.Notifier
	if mailer != nil {
		contactNotifier = mailer
	}
	contactService := contact.NewService(contactRepo, cfg.Timezone, contactNotifier)
	contactHandler := contact.NewHandler(contactService, val, logger, cfg.IsDev())

	scheduleRepo := schedule.NewRepository(cols.Schedules)
	var scheduleNotifier schedule.Notifier
	if mailer != nil {
		scheduleNotifier = mailer
	}
	scheduleService := schedule.NewService(scheduleRepo, cfg.Timezone, scheduleNotifier)
	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	scheduleHandler := schedule.NewHandler(scheduleService, val, logger, cacheStore, cacheTTL, cfg.IsDev())

	adminHandler := admin.NewHandler(cfg, val, logger)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Recover(logger, cfg.IsDev()))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	window := time.Duration(cfg.RateLimitWindowSec) * time.Second
	scheduleLimiter := middleware.NewRateLimiter(cfg.RateLimitSchedule, window)
	contactLimiter := middleware.NewRateLimiter(cfg.RateLimitContact, window)
	staffAuth := middleware.StaffAuth(cfg.AdminAPIKey, jwtManager)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			transport.WriteJSON(w, http.StatusOK, map[string]string{
				"status":  "OK",
				"message": "Server is running",
			})
		})

		api.With(contactLimiter.Middleware).Post("/contact", contactHandler.Create)
		api.With(staffAuth).Get("/contact", contactHandler.List)
		api.With(staffAuth).Patch("/contact/{id}/status", contactHandler.UpdateStatus)

		api.With(scheduleLimiter.Middleware).Post("/schedule", scheduleHandler.Create)
		api.Get("/schedule/slots", scheduleHandler.BookedSlots)
		api.With(staffAuth).Get("/schedule", scheduleHandler.List)
		api.With(staffAuth).Patch("/schedule/{id}/status", scheduleHandler.UpdateStatus)

		api.Route("/admin", func(a chi.Router) {
			a.Post("/login", adminHandler.Login)
			a.Post("/refresh", adminHandler.Refresh)
			a.Post("/logout", adminHandler.Logout)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		transport.WriteError(w, http.StatusNotFound, "Route not found", nil)
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
