package model

import "time"

const (
	SinistroAberto  = "Aberto"
	SinistroFechado = "Fechado"
)

// Sinistro is a claim against an Apolice.
type Sinistro struct {
	ID             uint   `gorm:"primaryKey"`
	ApoliceID      uint   `gorm:"index;not null"`
	Descricao      string `gorm:"not null"`
	DataOcorrencia string `gorm:"not null"` // DD/MM/YYYY
	Status         string `gorm:"type:varchar(20);not null;default:'Aberto'"`
	CreatedAt      time.Time
	FechadoEm      *time.Time

	Apolice *Apolice `gorm:"foreignKey:ApoliceID"`
}

func (Sinistro) TableName() string { return "sinistros" }
