package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClinicID uint   `json:"clinic_id"`
	Clinic   Clinic `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"clinic"`

	OwnerID uint `json:"owner_id"`
	Owner   User `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"owner"`

	VeterinarianID uint `json:"veterinarian_id"`
	Veterinarian   User `gorm:"foreignKey:VeterinarianID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"veterinarian"`

	PetID uint `json:"pet_id"`
	Pet   Pet  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"pet"`

	// Data no formato 2006-01-02 e horários 15:04, interpretados no
	// timezone da clínica (nunca deslocados para UTC).
	ScheduledDate string `gorm:"size:10;not null" json:"scheduled_date"`
	TimeSlotStart string `gorm:"size:5;not null" json:"time_slot_start"`
	TimeSlotEnd   string `gorm:"size:5;not null" json:"time_slot_end"`

	BookingType    string `gorm:"size:20;default:'video_call'" json:"booking_type"`
	Priority       string `gorm:"size:20;default:'normal'" json:"priority"`
	ReasonForVisit string `gorm:"size:255" json:"reason_for_visit"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ConsultationID *uint `json:"consultation_id"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	MissedAt    *time.Time `json:"missed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
