package main

import (
	"context"
	"log"
	"net/http"
	"os"

	_ "hevatrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"hevatrack/internal/auth"
	"hevatrack/internal/cache"
	"hevatrack/internal/config"
	"hevatrack/internal/db"
	"hevatrack/internal/handler"
	"hevatrack/internal/model"
	"hevatrack/internal/repository"
	"hevatrack/internal/router"
	"hevatrack/internal/service"
)

// @title HEVA Track API
// @version 1.0
// @description Case management backend for the HEVA social support program: beneficiary registry, funding workflow, dashboards, and PDF exports.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.FundingFlow{},
			&model.CreativeBusiness{},
			&model.DigitalAccess{},
			&model.FinancialRecord{},
			&model.VulnerabilityAssessment{},
			&model.Beneficiary{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Beneficiary{},
		&model.VulnerabilityAssessment{},
		&model.FinancialRecord{},
		&model.DigitalAccess{},
		&model.CreativeBusiness{},
		&model.FundingFlow{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	beneficiaryRepo := repository.NewBeneficiaryRepository(gormDB)
	flowRepo := repository.NewFundingFlowRepository(gormDB)
	assessmentRepo := repository.NewAssessmentRepository(gormDB)
	financialRepo := repository.NewFinancialRecordRepository(gormDB)
	digitalRepo := repository.NewDigitalAccessRepository(gormDB)
	creativeRepo := repository.NewCreativeBusinessRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	beneficiaryService := service.NewBeneficiaryService(beneficiaryRepo, assessmentRepo, financialRepo, digitalRepo, creativeRepo)
	fundingService := service.NewFundingService(beneficiaryRepo, flowRepo)
	reportService := service.NewReportService(beneficiaryRepo, flowRepo, assessmentRepo, financialRepo, digitalRepo, cacheClient, cfg.DashboardTTL)
	exportService := service.NewExportService()

	// Seed the predefined program accounts
	if n, err := authService.SeedPredefinedUsers(context.Background(), service.DefaultPredefinedUsers()); err != nil {
		log.Printf("Warning: predefined user seeding: %v", err)
	} else if n > 0 {
		log.Printf("Seeded %d predefined users", n)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	beneficiaryHandler := handler.NewBeneficiaryHandler(beneficiaryService)
	fundingHandler := handler.NewFundingHandler(fundingService, reportService, flowRepo)
	reportHandler := handler.NewReportHandler(reportService)
	exportHandler := handler.NewExportHandler(beneficiaryService, reportService, exportService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenStore,
		authHandler,
		beneficiaryHandler,
		fundingHandler,
		reportHandler,
		exportHandler,
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
