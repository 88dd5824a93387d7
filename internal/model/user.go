package model

import "time"

// Role classifies a user as either a student or a tutor.
type Role string

const (
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTutor
}

// User represents a registered user. Every user owns exactly one profile
// matching its role, created in the same transaction as the user itself.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Username     string    `json:"username" gorm:"size:150;not null"`
	FirstName    string    `json:"first_name" gorm:"size:150"`
	LastName     string    `json:"last_name" gorm:"size:150"`
	Role         Role      `json:"role" gorm:"type:varchar(10);not null;index"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	TutorProfile   *TutorProfile   `json:"tutor_profile,omitempty" gorm:"foreignKey:UserID"`
	StudentProfile *StudentProfile `json:"student_profile,omitempty" gorm:"foreignKey:UserID"`
}

// FullName returns "first last", falling back to username then email.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" || u.LastName != "":
		if u.FirstName == "" {
			return u.LastName
		}
		if u.LastName == "" {
			return u.FirstName
		}
		return u.FirstName + " " + u.LastName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}
