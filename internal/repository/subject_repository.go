package repository

import (
	"context"

	"gorm.io/gorm"

	"tutorhub/internal/model"
)

// SubjectRepository defines subject catalog persistence operations.
type SubjectRepository interface {
	List(ctx context.Context) ([]model.Subject, error)
	FindByID(ctx context.Context, id uint) (*model.Subject, error)
	// FindByIDs returns the subjects matching the given ids; ids with no
	// matching row are simply absent from the result.
	FindByIDs(ctx context.Context, ids []uint) ([]model.Subject, error)
	Create(ctx context.Context, subject *model.Subject) error
}

type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

// List returns all subjects ordered by name.
func (r *subjectRepository) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

// FindByID finds a subject by ID.
func (r *subjectRepository) FindByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

// FindByIDs finds subjects by a set of IDs.
func (r *subjectRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Subject, error) {
	if len(ids) == 0 {
		return []model.Subject{}, nil
	}
	var subjects []model.Subject
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

// Create creates a new subject.
func (r *subjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}
