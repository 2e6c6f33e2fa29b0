package models

import "time"

const (
	ConsultationOpen      = "open"
	ConsultationCompleted = "completed"
)

type Consultation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID  uint `json:"clinic_id"`
	BookingID uint `gorm:"uniqueIndex" json:"booking_id"`

	// Texto opaco repassado como veio (diagnóstico/anotações do veterinário)
	Diagnosis string `gorm:"type:text" json:"diagnosis"`
	Notes     string `gorm:"type:text" json:"notes"`

	Status string `gorm:"size:20;default:'open'" json:"status"`

	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
