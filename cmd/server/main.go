package main

import (
	"context"
	"os"
	"strings"

	"formgate/internal/config"
	"formgate/internal/db"
	"formgate/internal/logging"
	"formgate/internal/mail"
	"formgate/internal/repository"
	"formgate/internal/server"
	"formgate/internal/telemetry"
)

func main() {
	// Set development environment variables
	if os.Getenv("ENV") != "production" {
		os.Setenv("ENV", "development")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Initialize logger configuration
	logConfig := &logging.LogConfig{
		Level:      strings.ToLower(cfg.LogLevel),
		File:       cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
	}
	if logConfig.File == "" {
		logConfig.File = "./logs/formgate.log"
	}

	if err := logging.InitLogger(logConfig); err != nil {
		panic(err)
	}
	logger := logging.GetGlobalLogger()
	defer logger.Close()

	logger.Info("Starting server in %s mode", cfg.Environment)

	// Settings store: Postgres when configured, env-seeded in-memory otherwise.
	var settings repository.SettingsRepository
	if cfg.DatabaseURL != "" {
		entClient, err := db.Initialize(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database: %v", err)
			os.Exit(1)
		}
		defer entClient.Close()
		settings = repository.NewSettingsRepository(entClient)
		logger.Info("Settings store: postgres")
	} else {
		settings = repository.NewMemorySettingsFromEnv()
		logger.Warn("DATABASE_URL not set, using in-memory settings store seeded from environment")
	}

	// Mailer: real SMTP when a host is configured, log-only otherwise.
	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		smtpMailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		})
		if err != nil {
			logger.Error("Failed to configure SMTP mailer: %v", err)
			os.Exit(1)
		}
		mailer = smtpMailer
	} else {
		mailer = mail.NewMockMailer()
		logger.Warn("SMTP_HOST not set, outgoing email is recorded but not delivered")
	}

	if cfg.OTLPEndpoint != "" {
		shutdown, err := telemetry.InitTracer(context.Background(), "formgate", cfg.OTLPEndpoint)
		if err != nil {
			logger.Error("Failed to initialize tracing: %v", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
		logger.Info("Tracing enabled, exporting to %s", cfg.OTLPEndpoint)
	}

	srv := server.NewServer(cfg, settings, mailer)
	if err := srv.Start(); err != nil {
		logger.Error("Failed to start server: %v", err)
		os.Exit(1)
	}
}
