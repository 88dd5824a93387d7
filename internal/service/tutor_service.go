package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "tutorhub/internal/errors"
	"tutorhub/internal/model"
	"tutorhub/internal/repository"
)

// TutorFilters carries the directory's raw query parameters. Ordering is
// normalized against the whitelist before it reaches the repository.
type TutorFilters struct {
	SubjectID uint
	Search    string
	Ordering  string
}

// TutorService is the public tutor directory read-model.
type TutorService interface {
	List(ctx context.Context, filters TutorFilters) ([]model.User, error)
	Retrieve(ctx context.Context, id uint) (*model.User, error)
}

type tutorService struct {
	userRepo repository.UserRepository
}

// NewTutorService creates a new tutor directory service.
func NewTutorService(userRepo repository.UserRepository) TutorService {
	return &tutorService{userRepo: userRepo}
}

// List returns tutors with profiles and subject sets resolved.
func (s *tutorService) List(ctx context.Context, filters TutorFilters) ([]model.User, error) {
	q := repository.TutorQuery{
		SubjectID: filters.SubjectID,
		Search:    filters.Search,
		Ordering:  repository.NormalizeTutorOrdering(filters.Ordering),
	}

	tutors, err := s.userRepo.ListTutors(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	return tutors, nil
}

// Retrieve returns one tutor; absent ids and non-tutor users are not found.
func (s *tutorService) Retrieve(ctx context.Context, id uint) (*model.User, error) {
	tutor, err := s.userRepo.FindTutorByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find tutor: %w", err)
	}
	return tutor, nil
}
