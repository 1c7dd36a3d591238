package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/shulebase/shulebase/internal/auth"
	"github.com/shulebase/shulebase/internal/cache"
	"github.com/shulebase/shulebase/internal/config"
	"github.com/shulebase/shulebase/internal/database"
	"github.com/shulebase/shulebase/internal/handlers"
	"github.com/shulebase/shulebase/internal/metrics"
	"github.com/shulebase/shulebase/internal/middleware"
	"github.com/shulebase/shulebase/internal/models"
	"github.com/shulebase/shulebase/internal/payments"
	"github.com/shulebase/shulebase/internal/repository"
	"github.com/shulebase/shulebase/internal/services"
	"github.com/shulebase/shulebase/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Shulebase API")

	// Connect to database
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

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory cache initialized")
	}
	defer cacheImpl.Close()

	// Initialize repositories
	schoolRepo := repository.NewSchoolRepository()
	profileRepo := repository.NewProfileRepository()
	studentRepo := repository.NewStudentRepository()
	staffRepo := repository.NewStaffRepository()
	classRepo := repository.NewClassRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	financeRepo := repository.NewFinanceRepository()
	payrollRepo := repository.NewPayrollRepository()
	engagementRepo := repository.NewEngagementRepository()
	inventoryRepo := repository.NewInventoryRepository()
	auditRepo := repository.NewAuditRepository()

	// Session resolution
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	resolver := auth.NewResolver(verifier, profileRepo)

	// Payments gateway (optional)
	var gateway services.PaymentsGateway
	if cfg.Payments.Enabled {
		gateway = payments.NewClient(cfg.Payments.BaseURL, cfg.Payments.SecretKey, cfg.Payments.Timeout)
		log.Info().Msg("Payments processor client initialized")
	}

	// Initialize services
	schoolService := services.NewSchoolService(schoolRepo, profileRepo, auditRepo)
	academicsService := services.NewAcademicsService(studentRepo, staffRepo, classRepo, auditRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, classRepo, studentRepo, auditRepo)
	financeService := services.NewFinanceService(financeRepo, payrollRepo, studentRepo, staffRepo, classRepo, gateway, auditRepo)
	engagementService := services.NewEngagementService(engagementRepo, auditRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, auditRepo)
	auditService := services.NewAuditService(auditRepo)
	dashboardService := services.NewDashboardService(schoolRepo, studentRepo, staffRepo, classRepo, attendanceRepo, financeRepo, cacheImpl, cfg.Cache.TTL)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	sessionHandler := handlers.NewSessionHandler()
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	schoolHandler := handlers.NewSchoolHandler(schoolService)
	academicsHandler := handlers.NewAcademicsHandler(academicsService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	financeHandler := handlers.NewFinanceHandler(financeService, cfg.Payments.CallbackToken)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(metrics.Middleware)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Payment processor callback (token-authenticated, no user session)
	r.Post("/callbacks/payments", financeHandler.PaymentCallback)

	// Application API
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireSession(resolver))
		r.Use(middleware.SchoolScope)

		r.Get("/session", sessionHandler.Current)
		r.Get("/dashboard", dashboardHandler.View)

		// Super-admin console
		r.Route("/schools", func(r chi.Router) {
			r.Use(handlers.RequireCapability(models.CapManageSchools))
			r.Post("/", schoolHandler.CreateSchool)
			r.Get("/", schoolHandler.ListSchools)
			r.Get("/{id}", schoolHandler.GetSchool)
			r.Put("/{id}", schoolHandler.UpdateSchool)
			r.Delete("/{id}", schoolHandler.DeactivateSchool)
		})
		r.Route("/profiles", func(r chi.Router) {
			r.Use(handlers.RequireCapability(models.CapManageStaff))
			r.Post("/", schoolHandler.CreateProfile)
			r.Get("/", schoolHandler.ListProfiles)
		})

		// Students
		r.Route("/students", func(r chi.Router) {
			r.Get("/{id}/attendance", attendanceHandler.StudentRange)
			r.With(handlers.RequireCapability(models.CapManageStudents)).Post("/", academicsHandler.CreateStudent)
			r.Get("/", academicsHandler.ListStudents)
			r.Get("/{id}", academicsHandler.GetStudent)
			r.With(handlers.RequireCapability(models.CapManageStudents)).Put("/{id}", academicsHandler.UpdateStudent)
			r.With(handlers.RequireCapability(models.CapManageStudents)).Delete("/{id}", academicsHandler.DeleteStudent)
		})

		// Staff
		r.Route("/staff", func(r chi.Router) {
			r.Use(handlers.RequireCapability(models.CapManageStaff))
			r.Post("/", academicsHandler.CreateStaff)
			r.Get("/", academicsHandler.ListStaff)
			r.Get("/{id}", academicsHandler.GetStaff)
			r.Put("/{id}", academicsHandler.UpdateStaff)
			r.Delete("/{id}", academicsHandler.DeleteStaff)
		})

		// Classes and enrollment
		r.Route("/classes", func(r chi.Router) {
			r.Get("/", academicsHandler.ListClasses)
			r.Get("/{id}", academicsHandler.GetClass)
			r.Get("/{id}/enrollments", academicsHandler.ListEnrollments)
			r.With(handlers.RequireCapability(models.CapViewAttendance)).Get("/{id}/attendance", attendanceHandler.ClassDay)
			r.With(handlers.RequireCapability(models.CapManageClasses)).Post("/", academicsHandler.CreateClass)
			r.With(handlers.RequireCapability(models.CapManageClasses)).Put("/{id}", academicsHandler.UpdateClass)
			r.With(handlers.RequireCapability(models.CapManageClasses)).Delete("/{id}", academicsHandler.DeleteClass)
		})
		r.With(handlers.RequireCapability(models.CapManageClasses)).Post("/enrollments", academicsHandler.EnrollStudent)

		// Attendance
		r.With(handlers.RequireCapability(models.CapRecordAttendance)).Post("/attendance", attendanceHandler.RecordSheet)

		// Finance
		r.Route("/fees", func(r chi.Router) {
			r.Use(handlers.RequireCapability(models.CapManageFees))
			r.Post("/", financeHandler.CreateFeeStructure)
			r.Get("/", financeHandler.ListFeeStructures)
			r.Put("/{id}", financeHandler.UpdateFeeStructure)
			r.Delete("/{id}", financeHandler.DeleteFeeStructure)
		})
		r.Route("/invoices", func(r chi.Router) {
			r.Use(handlers.RequireCapability(models.CapViewInvoices))
			r.Get("/", financeHandler.ListInvoices)
			r.Get("/{id}", financeHandler.GetInvoice)
			r.With(handlers.RequireCapability(models.CapManageFees)).Post("/", financeHandler.IssueInvoice)
			r.With(handlers.RequireCapability(models.CapPayInvoices)).Post("/{id}/pay", financeHandler.CreatePaymentIntent)
		})
		r.Route("/payroll", func(r chi.Router) {
			r.Use(handlers.RequireCapability(models.CapManagePayroll))
			r.Post("/", financeHandler.CreatePayrollEntry)
			r.Get("/", financeHandler.ListPayroll)
			r.Post("/{id}/advance", financeHandler.AdvancePayroll)
		})

		// Engagement
		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", engagementHandler.ListAnnouncements)
			r.With(handlers.RequireCapability(models.CapPostAnnouncements)).Post("/", engagementHandler.PostAnnouncement)
			r.With(handlers.RequireCapability(models.CapPostAnnouncements)).Delete("/{id}", engagementHandler.DeleteAnnouncement)
		})
		r.Route("/events", func(r chi.Router) {
			r.Get("/", engagementHandler.ListEvents)
			r.With(handlers.RequireCapability(models.CapManageEvents)).Post("/", engagementHandler.CreateEvent)
			r.With(handlers.RequireCapability(models.CapManageEvents)).Delete("/{id}", engagementHandler.DeleteEvent)
		})

		// Inventory
		r.Route("/inventory", func(r chi.Router) {
			r.Use(handlers.RequireCapability(models.CapManageInventory))
			r.Post("/", inventoryHandler.CreateItem)
			r.Get("/", inventoryHandler.ListItems)
			r.Get("/{id}", inventoryHandler.GetItem)
			r.Put("/{id}", inventoryHandler.UpdateItem)
			r.Delete("/{id}", inventoryHandler.DeleteItem)
		})

		// Audit trail
		r.With(handlers.RequireCapability(models.CapViewAuditLog)).Get("/audit", auditHandler.ListByResource)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
