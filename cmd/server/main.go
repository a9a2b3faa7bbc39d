package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"clausesync/internal/config"
	emailnoop "clausesync/internal/email/noop"
	emailses "clausesync/internal/email/ses"
	"clausesync/internal/handler"
	"clausesync/internal/llm"
	"clausesync/internal/port"
	"clausesync/internal/repository/postgres"
	"clausesync/internal/review"
	"clausesync/internal/router"
	"clausesync/internal/service"
	s3storage "clausesync/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = emailses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = emailnoop.NewNoopSender()
	}

	// Initialize the completion client and analyzer
	llmClient := llm.NewClient(&cfg.LLM)
	analyzer := review.NewAnalyzer(llmClient, &cfg.Review)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	reviewSvc := service.NewReviewService(reviewRepo, userRepo, s3Client, emailSender, analyzer, cfg)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, authH, reviewH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
