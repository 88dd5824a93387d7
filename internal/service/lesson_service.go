package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "tutorhub/internal/errors"
	"tutorhub/internal/model"
	"tutorhub/internal/ratelimit"
	"tutorhub/internal/repository"
)

// CreateLessonRequestInput carries the write-once fields of a new request.
type CreateLessonRequestInput struct {
	TutorID         uint
	SubjectID       uint
	StartTime       time.Time
	DurationMinutes int
	Note            string
}

// LessonRequestService implements the request workflow: students create,
// the assigned tutor decides.
type LessonRequestService interface {
	// Create persists a new pending request. The rate limiter runs before any
	// validation or persistence work.
	Create(ctx context.Context, caller Caller, identity string, input CreateLessonRequestInput) (*model.LessonRequest, error)
	// List returns the caller's view: own submissions for students, received
	// requests for tutors. An explicit role filter that does not match the
	// caller's actual role yields an empty view.
	List(ctx context.Context, caller Caller, roleFilter, statusFilter string) ([]model.LessonRequest, error)
	// Transition moves a pending request to approved or rejected. Only the
	// assigned tutor may transition; terminal requests fail with a conflict.
	Transition(ctx context.Context, caller Caller, requestID uint, status model.LessonRequestStatus) (*model.LessonRequest, error)
}

type lessonRequestService struct {
	requestRepo repository.LessonRequestRepository
	userRepo    repository.UserRepository
	subjectRepo repository.SubjectRepository
	limiter     *ratelimit.Limiter
}

// NewLessonRequestService creates a new lesson request service.
func NewLessonRequestService(
	requestRepo repository.LessonRequestRepository,
	userRepo repository.UserRepository,
	subjectRepo repository.SubjectRepository,
	limiter *ratelimit.Limiter,
) LessonRequestService {
	return &lessonRequestService{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		limiter:     limiter,
	}
}

// Create persists a new pending lesson request on behalf of a student.
func (s *lessonRequestService) Create(ctx context.Context, caller Caller, identity string, input CreateLessonRequestInput) (*model.LessonRequest, error) {
	if !s.limiter.Allow(ctx, identity) {
		return nil, apperrors.ErrRateLimited
	}

	if caller.Role != model.RoleStudent {
		return nil, fmt.Errorf("only students can create lesson requests: %w", apperrors.ErrForbidden)
	}

	if input.DurationMinutes <= 0 {
		return nil, apperrors.NewValidation("duration_minutes", "must be greater than zero")
	}

	tutor, err := s.userRepo.FindByID(ctx, input.TutorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewValidation("tutor_id", "tutor not found")
		}
		return nil, fmt.Errorf("resolve tutor: %w", err)
	}
	if tutor.Role != model.RoleTutor {
		return nil, apperrors.NewValidation("tutor_id", "tutor not found")
	}

	if _, err := s.subjectRepo.FindByID(ctx, input.SubjectID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewValidation("subject_id", "subject not found")
		}
		return nil, fmt.Errorf("resolve subject: %w", err)
	}

	request := &model.LessonRequest{
		StudentID:       caller.ID,
		TutorID:         tutor.ID,
		SubjectID:       input.SubjectID,
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		Status:          model.LessonRequestPending,
		Note:            input.Note,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create lesson request: %w", err)
	}

	return s.requestRepo.FindByID(ctx, request.ID)
}

// List returns the caller's lesson requests, newest first.
func (s *lessonRequestService) List(ctx context.Context, caller Caller, roleFilter, statusFilter string) ([]model.LessonRequest, error) {
	q := repository.LessonRequestQuery{
		Status: model.LessonRequestStatus(statusFilter),
	}

	switch {
	case roleFilter == string(model.RoleStudent) || (roleFilter == "" && caller.Role == model.RoleStudent):
		q.StudentID = caller.ID
	case roleFilter == string(model.RoleTutor) || (roleFilter == "" && caller.Role == model.RoleTutor):
		q.TutorID = caller.ID
	default:
		return []model.LessonRequest{}, nil
	}

	return s.requestRepo.List(ctx, q)
}

// Transition applies a status decision on behalf of the assigned tutor.
func (s *lessonRequestService) Transition(ctx context.Context, caller Caller, requestID uint, status model.LessonRequestStatus) (*model.LessonRequest, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find lesson request: %w", err)
	}

	// Role alone is not enough: the caller must be the specific tutor the
	// request is addressed to.
	if caller.Role != model.RoleTutor || request.TutorID != caller.ID {
		return nil, fmt.Errorf("only the assigned tutor can change status: %w", apperrors.ErrForbidden)
	}

	if status != model.LessonRequestApproved && status != model.LessonRequestRejected {
		return nil, apperrors.NewValidation("status", "must be 'approved' or 'rejected'")
	}

	rows, err := s.requestRepo.UpdateStatusIfPending(ctx, requestID, status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if rows == 0 {
		// Already terminal, or a concurrent transition won the race.
		return nil, fmt.Errorf("request is no longer pending: %w", apperrors.ErrConflict)
	}

	return s.requestRepo.FindByID(ctx, requestID)
}
