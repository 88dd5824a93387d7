package model

import "github.com/shopspring/decimal"

// TutorProfile is the role-specific extension record owned 1:1 by a tutor user.
// Subjects is a wholesale-replaceable set; profile updates never merge into it.
type TutorProfile struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	Bio        string          `json:"bio" gorm:"type:text"`
	HourlyRate int             `json:"hourly_rate" gorm:"not null;default:0;index"`
	Rating     decimal.Decimal `json:"rating" gorm:"type:decimal(2,1);not null;default:0;index"`
	Subjects   []Subject       `json:"subjects" gorm:"many2many:tutor_subjects"`
}

// StudentProfile is the role-specific extension record owned 1:1 by a student user.
type StudentProfile struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	GradeLevel string `json:"grade_level" gorm:"size:64"`
}
