package models

import "time"

// Trilha imutável de transições do agendamento. Nunca atualizada nem
// apagada; a ordem de criação é a fonte de verdade.
type BookingActionLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint   `gorm:"index;not null" json:"booking_id"`
	Action    string `gorm:"size:50;not null" json:"action"`

	ActorUserID *uint  `json:"actor_user_id"`
	ActorRole   string `gorm:"size:20" json:"actor_role"`

	Details string `gorm:"type:text" json:"details"`

	CreatedAt time.Time `json:"created_at"`
}
