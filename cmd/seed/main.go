package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/config"
	"github.com/shulebase/shulebase/internal/database"
	"github.com/shulebase/shulebase/internal/repository"
	"github.com/shulebase/shulebase/internal/services"
	"github.com/shulebase/shulebase/pkg/logger"
)

// Seeds a demo school with sample data for local development.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

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

	seeder := services.NewSeedService(
		repository.NewSchoolRepository(),
		repository.NewProfileRepository(),
		repository.NewStudentRepository(),
		repository.NewStaffRepository(),
		repository.NewClassRepository(),
		repository.NewAttendanceRepository(),
		repository.NewFinanceRepository(),
		repository.NewEngagementRepository(),
		repository.NewInventoryRepository(),
	)

	school, err := seeder.SeedDemo(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Seeding failed")
	}
	log.Info().Str("school_id", school.ID.String()).Str("slug", school.Slug).Msg("Seeding complete")
}
