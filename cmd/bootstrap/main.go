package main

import (
	"context"
	"flag"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/config"
	"github.com/shulebase/shulebase/internal/database"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/repository"
	"github.com/shulebase/shulebase/pkg/logger"
)

// Registers the first super_admin profile for an existing auth-provider
// identity. Run once after the provider account is created.
func main() {
	userID := flag.String("user-id", "", "auth provider subject (UUID)")
	email := flag.String("email", "", "profile email")
	firstName := flag.String("first-name", "Super", "first name")
	lastName := flag.String("last-name", "Admin", "last name")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	subject, err := uuid.Parse(*userID)
	if err != nil {
		log.Fatal().Msg("-user-id must be a UUID")
	}
	if *email == "" {
		log.Fatal().Msg("-email is required")
	}

	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	profiles := repository.NewProfileRepository()
	profile := &models.Profile{
		UserID:    subject,
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		RoleName:  string(models.RoleSuperAdmin),
	}
	if err := profiles.Create(context.Background(), repository.ScopeAll(), profile); err != nil {
		log.Fatal().Err(err).Msg("Failed to create super admin profile")
	}
	log.Info().Str("profile_id", profile.ID.String()).Msg("Super admin profile created")
}
