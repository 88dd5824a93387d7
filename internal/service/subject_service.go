package service

import (
	"context"
	"fmt"

	"tutorhub/internal/model"
	"tutorhub/internal/repository"
)

// SubjectService exposes the subject catalog.
type SubjectService interface {
	List(ctx context.Context) ([]model.Subject, error)
}

type subjectService struct {
	subjectRepo repository.SubjectRepository
}

// NewSubjectService creates a new subject service.
func NewSubjectService(subjectRepo repository.SubjectRepository) SubjectService {
	return &subjectService{subjectRepo: subjectRepo}
}

func (s *subjectService) List(ctx context.Context) ([]model.Subject, error) {
	subjects, err := s.subjectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}
