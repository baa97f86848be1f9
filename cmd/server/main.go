package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	_ "spendtrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"spendtrack/internal/auth"
	"spendtrack/internal/cache"
	"spendtrack/internal/config"
	"spendtrack/internal/db"
	"spendtrack/internal/handler"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
	"spendtrack/internal/router"
	"spendtrack/internal/service"
)

// @title Expense Tracker API
// @version 1.0
// @description Personal expense tracking with cookie-based JWT sessions, per-user categories and expenses, and monthly reports.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	// The placeholder signing key is only for unconfigured local runs.
	if cfg.IsProduction() && cfg.JWTSecret == config.DefaultJWTSecret {
		log.Fatal("JWT_SECRET must be set in production")
	}

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
			&model.Expense{},
			&model.Category{},
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
		&model.Category{},
		&model.Expense{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	transport := auth.NewSessionTransport(cfg.CookieName, cfg.IsProduction())
	resolver := auth.NewResolver(tokenService, transport, userRepo)
	gate := auth.NewGate(transport)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, cacheClient)
	reportService := service.NewReportService(expenseRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, transport, resolver)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	reportHandler := handler.NewReportHandler(reportService)
	pageHandler := handler.NewPageHandler()

	// Register routes
	router.Register(
		e,
		cfg,
		tokenService,
		gate,
		resolver,
		authHandler,
		categoryHandler,
		expenseHandler,
		reportHandler,
		pageHandler,
	)

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		if strings.HasPrefix(cfg.SwaggerHost, "http://") || strings.HasPrefix(cfg.SwaggerHost, "https://") {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
