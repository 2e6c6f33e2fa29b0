package models

import "time"

// Mensagens são append-only; sem edição nem remoção.
type ChatMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SessionID uint `gorm:"index;not null" json:"session_id"`

	SenderID   uint   `json:"sender_id"`
	SenderName string `gorm:"size:100" json:"sender_name"`

	Message string `gorm:"size:2000;not null" json:"message"`

	CreatedAt time.Time `json:"created_at"`
}
