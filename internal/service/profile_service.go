package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "tutorhub/internal/errors"
	"tutorhub/internal/model"
	"tutorhub/internal/repository"
)

// ProfileUpdate carries the partial fields of a PATCH /me. Nil means the
// field was absent from the request. Fields that do not apply to the caller's
// role are ignored, not rejected.
type ProfileUpdate struct {
	Bio        *string
	HourlyRate *int
	GradeLevel *string
	Subjects   *[]uint
}

// ProfileService builds and mutates the "my profile" projection.
type ProfileService interface {
	// Get loads the user with its role-matched profile and subject set in one
	// fetch plan.
	Get(ctx context.Context, userID uint) (*model.User, error)
	// Update applies the role-legal subset of the patch and returns the
	// refreshed projection. The subjects list replaces the prior set
	// wholesale; unknown subject ids are dropped silently.
	Update(ctx context.Context, caller Caller, patch ProfileUpdate) (*model.User, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	subjectRepo repository.SubjectRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	subjectRepo repository.SubjectRepository,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		subjectRepo: subjectRepo,
	}
}

// Get loads the profile projection source.
func (s *profileService) Get(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindForProfile(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

// Update applies a partial profile update for the caller's role.
func (s *profileService) Update(ctx context.Context, caller Caller, patch ProfileUpdate) (*model.User, error) {
	if patch.HourlyRate != nil && *patch.HourlyRate < 0 {
		return nil, apperrors.NewValidation("hourly_rate", "must be >= 0")
	}

	var err error
	if caller.Role == model.RoleTutor {
		err = s.updateTutor(ctx, caller.ID, patch)
	} else {
		err = s.updateStudent(ctx, caller.ID, patch)
	}
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, caller.ID)
}

func (s *profileService) updateTutor(ctx context.Context, userID uint, patch ProfileUpdate) error {
	// Unknown subject ids silently drop out of the replacement set.
	var subjects []model.Subject
	if patch.Subjects != nil {
		found, err := s.subjectRepo.FindByIDs(ctx, *patch.Subjects)
		if err != nil {
			return fmt.Errorf("resolve subjects: %w", err)
		}
		subjects = found
	}

	return s.profileRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.ProfileRepository) error {
		profile, err := repo.FindTutorProfile(ctx, userID)
		if err != nil {
			return fmt.Errorf("load tutor profile: %w", err)
		}

		if patch.Bio != nil {
			profile.Bio = *patch.Bio
		}
		if patch.HourlyRate != nil {
			profile.HourlyRate = *patch.HourlyRate
		}
		if err := repo.SaveTutorProfile(ctx, profile); err != nil {
			return fmt.Errorf("save tutor profile: %w", err)
		}

		if patch.Subjects != nil {
			if err := repo.ReplaceSubjects(ctx, profile, subjects); err != nil {
				return fmt.Errorf("replace subjects: %w", err)
			}
		}
		return nil
	})
}

func (s *profileService) updateStudent(ctx context.Context, userID uint, patch ProfileUpdate) error {
	if patch.GradeLevel == nil {
		return nil
	}
	profile, err := s.profileRepo.FindStudentProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("load student profile: %w", err)
	}
	profile.GradeLevel = *patch.GradeLevel
	if err := s.profileRepo.SaveStudentProfile(ctx, profile); err != nil {
		return fmt.Errorf("save student profile: %w", err)
	}
	return nil
}
