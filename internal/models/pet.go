package models

import "time"

// Pet do tutor, sem login próprio, vinculado à clínica
type Pet struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClinicID uint `json:"clinic_id"`
	OwnerID  uint `json:"owner_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Species string `gorm:"size:50" json:"species"`
	Breed   string `gorm:"size:50" json:"breed"`
	Notes   string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
