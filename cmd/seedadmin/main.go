package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/batchbinder/content-service/internal/auth"
	"github.com/batchbinder/content-service/internal/config"
	"github.com/batchbinder/content-service/internal/models"
	"github.com/batchbinder/content-service/internal/repositories"
	"github.com/batchbinder/content-service/internal/repositories/postgres"
	"github.com/batchbinder/content-service/pkg"
)

// seedadmin creates the admin account out-of-band. The API itself has no
// admin signup endpoint.
func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("email and password are required (flags or ADMIN_EMAIL/ADMIN_PASSWORD)")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	repo := postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db})
	ctx := context.Background()

	if _, err := repo.Admin().GetByEmail(ctx, *email); err == nil {
		log.Printf("Admin %s already exists, nothing to do", *email)
		return
	} else if !repositories.IsNotFoundError(err) {
		log.Fatalf("Failed to check existing admin: %v", err)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := repo.Admin().Create(ctx, &models.Admin{
		Email:        *email,
		PasswordHash: hash,
	}); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin %s created", *email)
}
