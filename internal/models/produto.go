package models

import "time"

type Produto struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Nome      string `gorm:"size:100;not null" json:"nome"`
	Marca     string `gorm:"size:100" json:"marca"`
	Categoria string `gorm:"size:50;not null" json:"categoria"`
	ColorHex  string `gorm:"size:10" json:"colorHex"`

	Qty    int `gorm:"default:0" json:"qty"`
	MinQty int `gorm:"default:0" json:"minQty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrecisaRepor indica alerta de estoque baixo
func (p *Produto) PrecisaRepor() bool {
	return p.Qty <= p.MinQty
}
