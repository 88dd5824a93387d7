package repository

import (
	"context"

	"gorm.io/gorm"

	"tutorhub/internal/model"
)

// LessonRequestQuery scopes a lesson-request listing. Exactly one of
// StudentID/TutorID is set for the caller's view; Status narrows by exact
// match when non-empty.
type LessonRequestQuery struct {
	StudentID uint
	TutorID   uint
	Status    model.LessonRequestStatus
}

// LessonRequestRepository defines lesson-request persistence operations.
type LessonRequestRepository interface {
	Create(ctx context.Context, request *model.LessonRequest) error
	// FindByID loads a request with student, tutor and subject resolved.
	FindByID(ctx context.Context, id uint) (*model.LessonRequest, error)
	// List returns requests newest-first with relations resolved in a bounded
	// number of fetches.
	List(ctx context.Context, q LessonRequestQuery) ([]model.LessonRequest, error)
	// UpdateStatusIfPending transitions the request in a single statement
	// guarded by a pending precondition. Returns the number of rows updated;
	// zero means the request was already terminal or lost a concurrent race.
	UpdateStatusIfPending(ctx context.Context, id uint, status model.LessonRequestStatus) (int64, error)
}

type lessonRequestRepository struct {
	db *gorm.DB
}

// NewLessonRequestRepository creates a new lesson request repository.
func NewLessonRequestRepository(db *gorm.DB) LessonRequestRepository {
	return &lessonRequestRepository{db: db}
}

// Create creates a new lesson request.
func (r *lessonRequestRepository) Create(ctx context.Context, request *model.LessonRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// FindByID finds a lesson request by ID with its relations resolved.
func (r *lessonRequestRepository) FindByID(ctx context.Context, id uint) (*model.LessonRequest, error) {
	var request model.LessonRequest
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Tutor").
		Preload("Subject").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// List lists lesson requests for one caller view, newest first.
func (r *lessonRequestRepository) List(ctx context.Context, q LessonRequestQuery) ([]model.LessonRequest, error) {
	tx := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Tutor").
		Preload("Subject")

	if q.StudentID != 0 {
		tx = tx.Where("student_id = ?", q.StudentID)
	}
	if q.TutorID != 0 {
		tx = tx.Where("tutor_id = ?", q.TutorID)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	var requests []model.LessonRequest
	if err := tx.Order("created_at DESC, id DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatusIfPending applies an optimistic status transition.
func (r *lessonRequestRepository) UpdateStatusIfPending(ctx context.Context, id uint, status model.LessonRequestStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.LessonRequest{}).
		Where("id = ? AND status = ?", id, model.LessonRequestPending).
		Update("status", status)
	return res.RowsAffected, res.Error
}
