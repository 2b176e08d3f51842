package main

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ndewijer/RemitWise-Backend/internal/api"
	"github.com/ndewijer/RemitWise-Backend/internal/database"
	"github.com/ndewijer/RemitWise-Backend/internal/gemini"
	"github.com/ndewijer/RemitWise-Backend/internal/repository"
	"github.com/ndewijer/RemitWise-Backend/internal/service"
	"github.com/ndewijer/RemitWise-Backend/internal/tracking"
)

// app holds the wired service layer shared by the commands.
type app struct {
	db       *sql.DB
	services api.Services
}

// newApp opens the database and builds repositories, the Gemini client and services.
func newApp(ctx context.Context) (*app, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("connected to database",
		zap.String("path", cfg.Database.Path),
		zap.String("namespace", cfg.Database.Namespace),
	)

	// Create repositories
	records := repository.NewRecordRepository(db, cfg.Database.Namespace)
	affiliateRepo := repository.NewAffiliateRepository(records)
	clickRepo := repository.NewClickRepository(records)

	signer, generated, err := tracking.NewSigner(cfg.Tracking.Key, cfg.Tracking.TTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tracking signer: %w", err)
	}
	if generated {
		logger.Warn("TRACKING_KEY not set, using an ephemeral key; click-through links stop working after a restart")
	}

	// Create services
	affiliateService := service.NewAffiliateService(db, affiliateRepo)
	clickService := service.NewClickService(db, clickRepo, logger.Named("clicks"))
	adminService := service.NewAdminService(
		affiliateService,
		clickService,
		cfg.Stats.CPARate,
		cfg.Stats.ConversionRate,
	)

	client, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	comparisonService := service.NewComparisonService(
		client,
		affiliateService,
		signer,
		logger.Named("comparison"),
		service.ComparisonOptions{
			Timeout:    cfg.Gemini.Timeout,
			MaxRetries: cfg.Gemini.MaxRetries,
			RetryDelay: cfg.Gemini.RetryDelay,
			Platforms:  gemini.PlatformNames(cfg.Gemini.ExtraPlatforms),
			PublicURL:  cfg.Server.PublicURL,
		},
	)

	return &app{
		db: db,
		services: api.Services{
			System: service.NewSystemService(db, cfg.Gemini.Model, map[string]bool{
				"tracking_urls":   true,
				"persistent_keys": !generated,
				"click_digest":    cfg.Stats.DigestSchedule != "",
			}),
			Comparison: comparisonService,
			Affiliate:  affiliateService,
			Click:      clickService,
			Admin:      adminService,
			Signer:     signer,
		},
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
