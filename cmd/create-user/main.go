// Command create-user provisions a user account from the command line.
// Usage: CLAUSESYNC_NEW_USER_PASSWORD=... go run ./cmd/create-user -email alice@example.com -name "Alice" -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"clausesync/internal/config"
	"clausesync/internal/domain"
	"clausesync/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	email := flag.String("email", "", "user email (required)")
	name := flag.String("name", "", "full name (required)")
	role := flag.String("role", "member", "role: admin or member")
	flag.Parse()

	if *email == "" || *name == "" {
		flag.Usage()
		os.Exit(1)
	}

	userRole := domain.UserRole(*role)
	if userRole != domain.RoleAdmin && userRole != domain.RoleMember {
		return fmt.Errorf("invalid role %q; allowed: admin, member", *role)
	}

	// Password comes from the environment so it stays out of shell history.
	password := os.Getenv("CLAUSESYNC_NEW_USER_PASSWORD")
	if len(password) < 8 {
		return fmt.Errorf("CLAUSESYNC_NEW_USER_PASSWORD must be set and at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	user := &domain.User{
		ID:           uuid.New(),
		Email:        *email,
		PasswordHash: string(hash),
		FullName:     *name,
		Role:         userRole,
		IsActive:     true,
	}

	userRepo := postgres.NewUserRepo(db)
	if err := userRepo.Create(context.Background(), user); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	log.Printf("created user %s (%s) with role %s", user.Email, user.ID, user.Role)
	return nil
}
