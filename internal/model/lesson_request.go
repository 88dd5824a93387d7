package model

import "time"

// LessonRequestStatus represents the status of a lesson request.
type LessonRequestStatus string

const (
	LessonRequestPending  LessonRequestStatus = "pending"
	LessonRequestApproved LessonRequestStatus = "approved"
	LessonRequestRejected LessonRequestStatus = "rejected"
)

// Terminal reports whether no further transition is allowed from the status.
func (s LessonRequestStatus) Terminal() bool {
	return s == LessonRequestApproved || s == LessonRequestRejected
}

// LessonRequest is a proposed tutoring session awaiting the tutor's decision.
// Status is the only mutable field after creation; everything else is
// write-once. The subject reference is protected: a subject cannot be deleted
// while any request points at it.
type LessonRequest struct {
	ID              uint                `json:"id" gorm:"primaryKey"`
	StudentID       uint                `json:"student_id" gorm:"not null;index"`
	TutorID         uint                `json:"tutor_id" gorm:"not null;index"`
	SubjectID       uint                `json:"subject_id" gorm:"not null"`
	StartTime       time.Time           `json:"start_time" gorm:"not null;index"`
	DurationMinutes int                 `json:"duration_minutes" gorm:"not null"`
	Status          LessonRequestStatus `json:"status" gorm:"type:varchar(10);not null;default:'pending';index:idx_lesson_requests_status_created,priority:1"`
	Note            string              `json:"note" gorm:"type:text"`
	CreatedAt       time.Time           `json:"created_at" gorm:"index:idx_lesson_requests_status_created,priority:2"`

	// Relations
	Student User    `json:"-" gorm:"foreignKey:StudentID"`
	Tutor   User    `json:"-" gorm:"foreignKey:TutorID"`
	Subject Subject `json:"-" gorm:"foreignKey:SubjectID;constraint:OnDelete:RESTRICT"`
}
