package models

import "time"

type Servico struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Nome      string  `gorm:"size:100;not null" json:"nome"`
	Descricao string  `gorm:"size:255" json:"descricao"`
	Preco     float64 `json:"preco"`
	Duracao   int     `json:"duracao"` // minutos

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
