package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ksbmInfotechOfficial/vscct/internal/config"
	"github.com/ksbmInfotechOfficial/vscct/internal/handler"
	"github.com/ksbmInfotechOfficial/vscct/internal/middleware"
	"github.com/ksbmInfotechOfficial/vscct/internal/provider/msg91"
	"github.com/ksbmInfotechOfficial/vscct/internal/provider/wordpress"
	"github.com/ksbmInfotechOfficial/vscct/internal/repository"
	"github.com/ksbmInfotechOfficial/vscct/internal/router"
	"github.com/ksbmInfotechOfficial/vscct/internal/usecase"
	"github.com/ksbmInfotechOfficial/vscct/pkg/jwtutil"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// The API stays up without a database; data endpoints fail per-request
	// until Mongo comes back.
	var db *mongo.Database
	var pingDB func(ctx context.Context) error
	mongoClient, err := repository.Connect(ctx, cfg.Mongo.URI)
	if mongoClient == nil {
		logger.Fatal("invalid mongodb uri", zap.Error(err))
	}
	if err != nil {
		logger.Warn("mongodb unreachable, data endpoints will fail until it recovers", zap.Error(err))
	} else {
		logger.Info("mongodb connected", zap.String("db", cfg.Mongo.DBName))
	}
	db = mongoClient.Database(cfg.Mongo.DBName)
	pingDB = func(ctx context.Context) error {
		return mongoClient.Ping(ctx, readpref.Primary())
	}
	defer mongoClient.Disconnect(context.Background())

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			rdb = nil
		}
	}

	otpRepo := repository.NewOtpRepository(db)
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	tokens := jwtutil.NewManager(
		cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL,
	)
	sender := msg91.NewClient(cfg.OTP)
	wp := wordpress.NewClient(cfg.WP.APIURL)

	authUC := usecase.NewAuthUsecase(otpRepo, userRepo, adminRepo, sender, tokens, cfg.OTP, cfg.Admin, logger)
	userUC := usecase.NewUserUsecase(userRepo, logger)
	adminUC := usecase.NewAdminUsecase(userRepo, notificationRepo, logger)

	authMW := middleware.NewAuthMiddleware(tokens, userRepo, adminRepo, logger)

	mux := router.New(router.Handlers{
		Auth:    handler.NewAuthHandler(authUC, logger),
		User:    handler.NewUserHandler(userUC, logger),
		Admin:   handler.NewAdminHandler(adminUC, logger),
		Content: handler.NewContentHandler(wp, logger),
		Health:  handler.NewHealthHandler(pingDB),
	}, authMW, rdb, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
