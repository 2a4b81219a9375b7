package models

import "time"

// Cliente do estúdio, vinculado à conta da manicure (UserID)
type Cliente struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Nome      string `gorm:"size:100;not null" json:"nome"`
	Telefone  string `gorm:"size:20;not null" json:"telefone"`
	Email     string `gorm:"size:100" json:"email"`
	Instagram string `gorm:"size:100" json:"instagram"`

	// Pontos só aumentam: +10 quando um agendamento vira "done"
	Pontos int `gorm:"default:0" json:"pontos"`

	Alergias     string `gorm:"type:text" json:"alergias"`
	Preferencias string `gorm:"type:text" json:"preferencias"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
