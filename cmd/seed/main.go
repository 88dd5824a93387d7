package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tutorhub/internal/config"
	"tutorhub/internal/db"
	"tutorhub/internal/model"
	"tutorhub/internal/repository"
)

const demoPassword = "Passw0rd!"

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.TutorProfile{},
		&model.StudentProfile{},
		&model.LessonRequest{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	math := ensureSubject(gormDB, "Math")
	physics := ensureSubject(gormDB, "Physics")
	english := ensureSubject(gormDB, "English")

	userRepo := repository.NewUserRepository(gormDB)
	profileRepo := repository.NewProfileRepository(gormDB)

	tutor1 := ensureUser(ctx, userRepo, model.User{
		Email:    "tutor@demo.com",
		Username: "tutor",
		Role:     model.RoleTutor,
	})
	setTutorProfile(ctx, profileRepo, tutor1, "Physics PhD, 10 years of tutoring", 500, "4.8", []model.Subject{physics, math})

	tutor2 := ensureUser(ctx, userRepo, model.User{
		Email:    "tutor2@demo.com",
		Username: "tutor2",
		Role:     model.RoleTutor,
	})
	setTutorProfile(ctx, profileRepo, tutor2, "Experienced language teacher", 400, "4.5", []model.Subject{english})

	student := ensureUser(ctx, userRepo, model.User{
		Email:    "student@demo.com",
		Username: "student",
		Role:     model.RoleStudent,
	})
	if profile, err := profileRepo.FindStudentProfile(ctx, student.ID); err == nil {
		profile.GradeLevel = "11"
		if err := profileRepo.SaveStudentProfile(ctx, profile); err != nil {
			log.Fatalf("Failed to update student profile: %v", err)
		}
	}

	log.Println("Demo data seeded successfully")
}

func ensureSubject(gormDB *gorm.DB, name string) model.Subject {
	var subject model.Subject
	if err := gormDB.Where("name = ?", name).FirstOrCreate(&subject, model.Subject{Name: name}).Error; err != nil {
		log.Fatalf("Failed to seed subject %q: %v", name, err)
	}
	return subject
}

func ensureUser(ctx context.Context, userRepo repository.UserRepository, user model.User) *model.User {
	existing, err := userRepo.FindByEmail(ctx, user.Email)
	if err == nil {
		return existing
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to look up user %q: %v", user.Email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}
	user.PasswordHash = string(hash)
	if user.Role == model.RoleTutor {
		user.TutorProfile = &model.TutorProfile{}
	} else {
		user.StudentProfile = &model.StudentProfile{}
	}
	if err := userRepo.Create(ctx, &user); err != nil {
		log.Fatalf("Failed to create user %q: %v", user.Email, err)
	}
	log.Printf("Created %s %s", user.Role, user.Email)
	return &user
}

func setTutorProfile(ctx context.Context, profileRepo repository.ProfileRepository, tutor *model.User, bio string, rate int, rating string, subjects []model.Subject) {
	profile, err := profileRepo.FindTutorProfile(ctx, tutor.ID)
	if err != nil {
		log.Fatalf("Failed to load tutor profile for %q: %v", tutor.Email, err)
	}
	profile.Bio = bio
	profile.HourlyRate = rate
	profile.Rating = decimal.RequireFromString(rating)
	if err := profileRepo.SaveTutorProfile(ctx, profile); err != nil {
		log.Fatalf("Failed to save tutor profile for %q: %v", tutor.Email, err)
	}
	if err := profileRepo.ReplaceSubjects(ctx, profile, subjects); err != nil {
		log.Fatalf("Failed to set subjects for %q: %v", tutor.Email, err)
	}
}
