package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"audio-marketplace/internal/client"
	"audio-marketplace/internal/config"
	"audio-marketplace/internal/repository"
	"audio-marketplace/internal/server"
	"audio-marketplace/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(&cfg.Log)
	defer logger.Sync()

	db, err := client.InitMysqlClient(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}

	stripeClient := client.NewStripeClient(&cfg.Stripe)

	storageClient, err := client.NewS3StorageClient(context.Background(), &cfg.Storage)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}

	mailer := client.NewSMTPMailer(&cfg.SMTP)

	categoryRepo := repository.NewCategoryRepository(db)
	subCategoryRepo := repository.NewSubCategoryRepository(db)
	freeRepo := repository.NewFreeAudioRepository(db)
	paidRepo := repository.NewPaidAudioRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	downloadRepo := repository.NewDownloadRepository(db)
	requestRepo := repository.NewCustomRequestRepository(db)
	userRepo := repository.NewUserRepository(db)

	notifier := service.NewNotificationService(mailer, cfg.SMTP.AdminEmail, logger)

	svcs := server.Services{
		Catalog:       service.NewCatalogService(storageClient, freeRepo, paidRepo, downloadRepo, notifier, cfg.MediaBaseURL, logger),
		Checkout:      service.NewCheckoutService(stripeClient, paidRepo, purchaseRepo, requestRepo, notifier, cfg.MediaBaseURL, logger),
		CustomRequest: service.NewCustomRequestService(requestRepo, notifier, logger),
		Taxonomy:      service.NewTaxonomyService(categoryRepo, subCategoryRepo),
		Report:        service.NewReportService(downloadRepo, purchaseRepo, requestRepo, freeRepo, paidRepo),
		Auth:          service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTLDays, logger),
	}

	srv := server.NewServer(svcs, &cfg.Auth, logger)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	logger.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}

func newLogger(logCfg *config.Log) *zap.Logger {
	level, err := zapcore.ParseLevel(logCfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if logCfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
