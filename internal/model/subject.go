package model

// Subject is a catalog entry tutors teach and lesson requests reference.
type Subject struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:64;not null"`
}
