package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/altynbek8/ServiceApp/internal/ai"
	"github.com/altynbek8/ServiceApp/internal/config"
	"github.com/altynbek8/ServiceApp/internal/email"
	"github.com/altynbek8/ServiceApp/internal/handler"
	authHandler "github.com/altynbek8/ServiceApp/internal/handler/auth"
	bookingHandler "github.com/altynbek8/ServiceApp/internal/handler/booking"
	chatHandler "github.com/altynbek8/ServiceApp/internal/handler/chat"
	favoriteHandler "github.com/altynbek8/ServiceApp/internal/handler/favorite"
	notificationHandler "github.com/altynbek8/ServiceApp/internal/handler/notification"
	portfolioHandler "github.com/altynbek8/ServiceApp/internal/handler/portfolio"
	profileHandler "github.com/altynbek8/ServiceApp/internal/handler/profile"
	providerHandler "github.com/altynbek8/ServiceApp/internal/handler/provider"
	reviewHandler "github.com/altynbek8/ServiceApp/internal/handler/review"
	searchHandler "github.com/altynbek8/ServiceApp/internal/handler/search"
	"github.com/altynbek8/ServiceApp/internal/middleware"
	"github.com/altynbek8/ServiceApp/internal/repository/postgres"
	"github.com/altynbek8/ServiceApp/internal/router"
	authService "github.com/altynbek8/ServiceApp/internal/service/auth"
	bookingService "github.com/altynbek8/ServiceApp/internal/service/booking"
	chatService "github.com/altynbek8/ServiceApp/internal/service/chat"
	favoriteService "github.com/altynbek8/ServiceApp/internal/service/favorite"
	notificationService "github.com/altynbek8/ServiceApp/internal/service/notification"
	portfolioService "github.com/altynbek8/ServiceApp/internal/service/portfolio"
	profileService "github.com/altynbek8/ServiceApp/internal/service/profile"
	providerService "github.com/altynbek8/ServiceApp/internal/service/provider"
	reviewService "github.com/altynbek8/ServiceApp/internal/service/review"
	searchService "github.com/altynbek8/ServiceApp/internal/service/search"
	"github.com/altynbek8/ServiceApp/pkg/auth"
	"github.com/altynbek8/ServiceApp/pkg/logger"
	redisBroker "github.com/altynbek8/ServiceApp/pkg/messaging/redis"
	"github.com/altynbek8/ServiceApp/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	appLogger := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Logger.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redisBroker.NewRedisBroker(redisBroker.Config{URL: cfg.Redis.URL}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	appMetrics := metrics.NewMetrics("serviceapp", "api")

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	providerRepo := postgres.NewProviderRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	blockRepo := postgres.NewBlockRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	portfolioRepo := postgres.NewPortfolioRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Language model, optional in local setups
	var llm ai.Client
	if cfg.Gemini.APIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create gemini client")
		}
		defer client.Close()
		llm = client
	} else {
		appLogger.Warn("gemini api key not set, search runs in fallback mode")
	}

	jwtSvc := auth.NewJWTService(auth.JWTConfig{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	emailSender := email.NewSender(cfg.Email)

	// Services
	notifSvc := notificationService.NewService(notificationRepo, profileRepo, outboxRepo, appLogger)
	authSvc := authService.NewService(profileRepo, providerRepo, jwtSvc, emailSender, appLogger)
	profileSvc := profileService.NewService(profileRepo)
	providerSvc := providerService.NewService(providerRepo, profileRepo, categoryRepo, portfolioRepo, reviewRepo, bookingRepo)
	bookingSvc := bookingService.NewService(bookingRepo, blockRepo, profileRepo, notifSvc, appMetrics)
	chatSvc := chatService.NewService(messageRepo, broker, notifSvc, appLogger, appMetrics)
	searchSvc := searchService.NewService(providerRepo, llm,
		time.Duration(cfg.Gemini.CacheTTLSeconds)*time.Second, appLogger, appMetrics)
	favoriteSvc := favoriteService.NewService(favoriteRepo, providerRepo)
	portfolioSvc := portfolioService.NewService(portfolioRepo)
	reviewSvc := reviewService.NewService(reviewRepo, llm, appLogger)

	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	r := router.NewRouter(authMiddleware, router.Handlers{
		Base:         handler.NewHandler(db),
		Auth:         authHandler.NewHandler(authSvc),
		Profile:      profileHandler.NewHandler(profileSvc),
		Provider:     providerHandler.NewHandler(providerSvc),
		Booking:      bookingHandler.NewHandler(bookingSvc),
		Chat:         chatHandler.NewHandler(chatSvc, appLogger),
		Search:       searchHandler.NewHandler(searchSvc),
		Favorite:     favoriteHandler.NewHandler(favoriteSvc),
		Portfolio:    portfolioHandler.NewHandler(portfolioSvc),
		Review:       reviewHandler.NewHandler(reviewSvc),
		Notification: notificationHandler.NewHandler(notifSvc),
	}, router.Config{
		RateLimitRPS:  50,
		RateBurst:     100,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "serviceapp_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	appLogger.Info("server started", map[string]interface{}{"port": cfg.Server.Port})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}
