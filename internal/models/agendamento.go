package models

import "time"

type Agendamento struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	ClienteID uint    `gorm:"not null" json:"cliente_id"`
	Cliente   Cliente `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"cliente"`

	ServicoID uint    `gorm:"not null" json:"servico_id"`
	Servico   Servico `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"servico"`

	DataHora time.Time `gorm:"not null" json:"data_hora"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Observacoes string `gorm:"size:255" json:"observacoes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
