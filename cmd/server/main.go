package main

import (
	"log"
	"net/http"
	"os"

	_ "tutorhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tutorhub/internal/auth"
	"tutorhub/internal/cache"
	"tutorhub/internal/config"
	"tutorhub/internal/db"
	"tutorhub/internal/handler"
	"tutorhub/internal/model"
	"tutorhub/internal/ratelimit"
	"tutorhub/internal/repository"
	"tutorhub/internal/router"
	"tutorhub/internal/service"
)

// @title TutorHub API
// @version 1.0
// @description Tutoring marketplace API: tutors publish subjects and rates, students send lesson requests, tutors approve or reject them.
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
			&model.LessonRequest{},
			&model.TutorProfile{},
			&model.StudentProfile{},
			&model.Subject{},
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
		&model.Subject{},
		&model.TutorProfile{},
		&model.StudentProfile{},
		&model.LessonRequest{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	subjectRepo := repository.NewSubjectRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)
	lessonRepo := repository.NewLessonRequestRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Lesson-request creation quota
	limiter := ratelimit.New(cacheClient, cfg.RateLimitMax, cfg.RateLimitWindow)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	profileService := service.NewProfileService(userRepo, profileRepo, subjectRepo)
	subjectService := service.NewSubjectService(subjectRepo)
	tutorService := service.NewTutorService(userRepo)
	lessonService := service.NewLessonRequestService(lessonRepo, userRepo, subjectRepo, limiter)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	meHandler := handler.NewMeHandler(profileService)
	subjectHandler := handler.NewSubjectHandler(subjectService)
	tutorHandler := handler.NewTutorHandler(tutorService)
	lessonHandler := handler.NewLessonRequestHandler(lessonService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		meHandler,
		subjectHandler,
		tutorHandler,
		lessonHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
