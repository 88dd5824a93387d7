package repository

import (
	"context"

	"gorm.io/gorm"

	"tutorhub/internal/model"
)

// ProfileRepository defines persistence for the role-specific profile records.
type ProfileRepository interface {
	FindTutorProfile(ctx context.Context, userID uint) (*model.TutorProfile, error)
	FindStudentProfile(ctx context.Context, userID uint) (*model.StudentProfile, error)
	SaveTutorProfile(ctx context.Context, profile *model.TutorProfile) error
	SaveStudentProfile(ctx context.Context, profile *model.StudentProfile) error
	// ReplaceSubjects swaps the profile's subject set wholesale.
	ReplaceSubjects(ctx context.Context, profile *model.TutorProfile, subjects []model.Subject) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProfileRepository) error) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindTutorProfile finds the tutor profile owned by a user.
func (r *profileRepository) FindTutorProfile(ctx context.Context, userID uint) (*model.TutorProfile, error) {
	var profile model.TutorProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindStudentProfile finds the student profile owned by a user.
func (r *profileRepository) FindStudentProfile(ctx context.Context, userID uint) (*model.StudentProfile, error) {
	var profile model.StudentProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveTutorProfile persists scalar changes to a tutor profile.
func (r *profileRepository) SaveTutorProfile(ctx context.Context, profile *model.TutorProfile) error {
	return r.db.WithContext(ctx).Omit("Subjects").Save(profile).Error
}

// SaveStudentProfile persists changes to a student profile.
func (r *profileRepository) SaveStudentProfile(ctx context.Context, profile *model.StudentProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// ReplaceSubjects replaces the subject association set.
func (r *profileRepository) ReplaceSubjects(ctx context.Context, profile *model.TutorProfile, subjects []model.Subject) error {
	return r.db.WithContext(ctx).Model(profile).Association("Subjects").Replace(subjects)
}

// WithTransaction executes a function within a database transaction.
func (r *profileRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ProfileRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &profileRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
