package models

import "time"

type VideoSession struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConsultationID uint `gorm:"index;not null" json:"consultation_id"`

	HostUserID        uint `json:"host_user_id"`
	ParticipantUserID uint `json:"participant_user_id"`

	RoomID string `gorm:"size:64;uniqueIndex" json:"room_id"`

	Status string `gorm:"size:20;default:'waiting'" json:"status"`

	DurationSeconds int `json:"duration_seconds"`

	StartedAt *time.Time `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
