package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/Madumtv/healthcentral-sub001/internal/config"
	"github.com/Madumtv/healthcentral-sub001/internal/email"
	"github.com/Madumtv/healthcentral-sub001/internal/handler"
	authHandler "github.com/Madumtv/healthcentral-sub001/internal/handler/auth"
	doctorHandler "github.com/Madumtv/healthcentral-sub001/internal/handler/doctor"
	medicationHandler "github.com/Madumtv/healthcentral-sub001/internal/handler/medication"
	reminderHandler "github.com/Madumtv/healthcentral-sub001/internal/handler/reminder"
	securityHandler "github.com/Madumtv/healthcentral-sub001/internal/handler/securityevent"
	"github.com/Madumtv/healthcentral-sub001/internal/middleware"
	"github.com/Madumtv/healthcentral-sub001/internal/registry"
	"github.com/Madumtv/healthcentral-sub001/internal/repository/postgres"
	"github.com/Madumtv/healthcentral-sub001/internal/router"
	authService "github.com/Madumtv/healthcentral-sub001/internal/service/auth"
	doctorService "github.com/Madumtv/healthcentral-sub001/internal/service/doctor"
	medicationService "github.com/Madumtv/healthcentral-sub001/internal/service/medication"
	reminderService "github.com/Madumtv/healthcentral-sub001/internal/service/reminder"
	securityService "github.com/Madumtv/healthcentral-sub001/internal/service/security"
	pkgauth "github.com/Madumtv/healthcentral-sub001/pkg/auth"
	"github.com/Madumtv/healthcentral-sub001/pkg/logger"
	"github.com/Madumtv/healthcentral-sub001/pkg/messaging/redis"
	"github.com/Madumtv/healthcentral-sub001/pkg/metrics"
	"github.com/Madumtv/healthcentral-sub001/pkg/ratelimit"
)

func main() {
	log := logger.New(nil)
	zl := log.Zerolog()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	m := metrics.New("healthcentral")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)
	eventRepo := postgres.NewSecurityEventRepository(db)

	// Official practitioner directory
	registryCfg, err := registry.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load registry configuration")
	}
	registryClient := registry.NewClient(*registryCfg, zl, m)

	// Reminder transport
	broker, err := redis.NewBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, zl)
	if err != nil {
		log.Fatal(err, "failed to connect to Redis")
	}
	defer broker.Close()

	emailSvc := email.NewService(cfg.SMTP)

	// Services
	loginLimiter := ratelimit.New(cfg.RateLimit.LoginMaxAttempts, cfg.RateLimit.LoginWindow)
	stopSweeper := middleware.StartSweeper(loginLimiter, cfg.RateLimit.LoginWindow)
	defer stopSweeper()

	eventSvc := securityService.NewService(eventRepo, zl)
	jwtSvc := pkgauth.NewJWTService(pkgauth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        cfg.JWT.Expiry,
		RefreshExpiry: cfg.JWT.RefreshExpiry,
	})
	authSvc := authService.NewService(userRepo, jwtSvc, loginLimiter, eventSvc, emailSvc, zl, m)
	doctorSvc := doctorService.NewService(doctorRepo, zl)
	medicationSvc := medicationService.NewService(medicationRepo)
	reminderSvc := reminderService.NewService(reminderRepo)

	scheduler := reminderService.NewScheduler(reminderRepo, userRepo, broker, emailSvc, zl, m)
	defer scheduler.Stop()

	// Router
	middleware.RegisterValidators()
	r := router.New(
		router.Config{
			RateLimit: rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst: cfg.RateLimit.Burst,
			CORS:      middleware.DefaultCORSConfig(),
		},
		middleware.NewAuthMiddleware(jwtSvc),
		handler.NewHandler(),
		[]router.Handler{
			authHandler.NewHandler(authSvc),
		},
		[]router.Handler{
			doctorHandler.NewHandler(doctorSvc, registryClient, eventSvc, zl, m),
			medicationHandler.NewHandler(medicationSvc, scheduler),
			reminderHandler.NewHandler(reminderSvc),
			securityHandler.NewHandler(eventSvc),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()
	log.Info("server started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}
