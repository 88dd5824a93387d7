package repository

import (
	"context"

	"gorm.io/gorm"

	"tutorhub/internal/model"
)

// TutorOrdering enumerates the sort orders the tutor directory accepts.
// Client-supplied values never reach the query layer directly; anything
// outside this set falls back to DefaultTutorOrdering.
type TutorOrdering string

const (
	OrderRatingAsc  TutorOrdering = "rating"
	OrderRatingDesc TutorOrdering = "-rating"
	OrderRateAsc    TutorOrdering = "hourly_rate"
	OrderRateDesc   TutorOrdering = "-hourly_rate"
	OrderIDAsc      TutorOrdering = "id"
	OrderIDDesc     TutorOrdering = "-id"

	DefaultTutorOrdering = OrderRatingDesc
)

var tutorOrderClauses = map[TutorOrdering]string{
	OrderRatingAsc:  "tutor_profiles.rating ASC",
	OrderRatingDesc: "tutor_profiles.rating DESC",
	OrderRateAsc:    "tutor_profiles.hourly_rate ASC",
	OrderRateDesc:   "tutor_profiles.hourly_rate DESC",
	OrderIDAsc:      "users.id ASC",
	OrderIDDesc:     "users.id DESC",
}

// NormalizeTutorOrdering maps a raw ordering parameter onto the whitelist,
// falling back to the default for anything unknown.
func NormalizeTutorOrdering(raw string) TutorOrdering {
	ordering := TutorOrdering(raw)
	if _, ok := tutorOrderClauses[ordering]; !ok {
		return DefaultTutorOrdering
	}
	return ordering
}

// TutorQuery captures the directory's filter and sort parameters.
type TutorQuery struct {
	SubjectID uint
	Search    string
	Ordering  TutorOrdering
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindForProfile loads a user with both profile relations and the tutor
	// subject set in one fetch plan.
	FindForProfile(ctx context.Context, id uint) (*model.User, error)
	// FindTutorByID loads a tutor user with its profile and subjects; returns
	// gorm.ErrRecordNotFound when the id is absent or not a tutor.
	FindTutorByID(ctx context.Context, id uint) (*model.User, error)
	// ListTutors runs the directory query. The number of round trips is fixed
	// regardless of result size: one joined scan plus the profile and subject
	// preloads.
	ListTutors(ctx context.Context, q TutorQuery) ([]model.User, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user together with any attached profile relation.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindForProfile loads a user with both profiles and tutor subjects preloaded.
func (r *userRepository) FindForProfile(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("TutorProfile.Subjects").
		Preload("StudentProfile").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindTutorByID loads a single tutor with profile and subjects.
func (r *userRepository) FindTutorByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("TutorProfile.Subjects").
		Where("id = ? AND role = ?", id, model.RoleTutor).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListTutors lists tutors with their profiles and subject sets.
func (r *userRepository) ListTutors(ctx context.Context, q TutorQuery) ([]model.User, error) {
	tx := r.db.WithContext(ctx).Model(&model.User{}).
		Joins("JOIN tutor_profiles ON tutor_profiles.user_id = users.id").
		Where("users.role = ?", model.RoleTutor)

	if q.SubjectID != 0 {
		tx = tx.Joins("JOIN tutor_subjects ON tutor_subjects.tutor_profile_id = tutor_profiles.id").
			Where("tutor_subjects.subject_id = ?", q.SubjectID)
	}

	if q.Search != "" {
		pattern := "%" + q.Search + "%"
		tx = tx.Where(
			"users.first_name LIKE ? OR users.last_name LIKE ? OR users.username LIKE ? OR users.email LIKE ? OR tutor_profiles.bio LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	clause, ok := tutorOrderClauses[q.Ordering]
	if !ok {
		clause = tutorOrderClauses[DefaultTutorOrdering]
	}

	// The subject join can fan out, so rows are deduplicated by identity.
	// Sort columns must stay in the select list for DISTINCT to be valid.
	var users []model.User
	err := tx.
		Distinct("users.*", "tutor_profiles.rating", "tutor_profiles.hourly_rate").
		Order(clause).
		Preload("TutorProfile.Subjects").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// WithTransaction executes a function within a database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &userRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
