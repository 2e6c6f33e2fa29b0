package models

import "time"

// Clinic é o tenant: todo usuário, pet e agendamento pertence a uma.
type Clinic struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	// IANA; datas e horários de slot são sempre interpretados aqui
	Timezone string `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`

	// Minutos antes do início do slot em que o botão de entrar abre (0–120)
	JoinWindowMinutes int `gorm:"default:5" json:"join_window_minutes"`

	// Só exibição: "24h" ou "12h"
	TimeFormat string `gorm:"size:5;default:'24h'" json:"time_format"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
