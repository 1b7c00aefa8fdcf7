package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"webapp/internal/config"
	"webapp/internal/handlers"
	"webapp/internal/notify"
	"webapp/internal/repositories"
	"webapp/internal/routes"
	"webapp/internal/services"
	"webapp/internal/storage"
)

func Run() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("could not open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("could not close database")
		}
	}()
	if err := db.PingContext(ctx); err != nil {
		logrus.WithError(err).Fatal("database unreachable")
	}
	if err := repositories.RunMigrations(ctx, db); err != nil {
		logrus.WithError(err).Fatal("schema migration failed")
	}

	// === Repos ===
	accountRepo := repositories.NewAccountRepository(db)

	// === External collaborators ===
	blobs, err := storage.NewS3Store(ctx, storage.S3Config{
		Region:    cfg.S3.Region,
		Bucket:    cfg.S3.Bucket,
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
	})
	if err != nil {
		logrus.WithError(err).Fatal("could not build blob store")
	}

	var notifier notify.Notifier
	switch cfg.Notifier.Kind {
	case "smtp":
		notifier = notify.NewSMTPNotifier(
			cfg.Notifier.SMTPHost,
			cfg.Notifier.SMTPPort,
			cfg.Notifier.SMTPUser,
			cfg.Notifier.SMTPPassword,
			cfg.Notifier.FromEmail,
			cfg.Verification.BaseURL,
		)
	default:
		notifier, err = notify.NewSNSNotifier(ctx, cfg.S3.Region, cfg.Notifier.TopicARN, cfg.Verification.BaseURL)
		if err != nil {
			logrus.WithError(err).Fatal("could not build notifier")
		}
	}

	// === Services ===
	accountService := services.NewAccountService(accountRepo, notifier, cfg.TokenTTL())
	pictureService := services.NewPictureService(accountRepo, blobs)

	// === Handlers ===
	userHandler := handlers.NewUserHandler(accountService)
	verifyHandler := handlers.NewVerifyHandler(accountService)
	pictureHandler := handlers.NewPictureHandler(pictureService)
	healthHandler := handlers.NewHealthHandler(db)

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routes.SetupRoutes(router, accountService, userHandler, verifyHandler, pictureHandler, healthHandler)

	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	logrus.WithField("addr", listenAddr).Info("server listening")
	if err := router.Run(listenAddr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
