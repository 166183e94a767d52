package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ApoliceAtiva     = "Ativa"
	ApoliceCancelada = "Cancelada"
)

// Apolice is a policy issued against a Seguro. Numero is a 5-digit,
// zero-padded sequence unique across all policies.
type Apolice struct {
	ID          uint            `gorm:"primaryKey"`
	Numero      string          `gorm:"type:varchar(10);uniqueIndex;not null"`
	SeguroID    uint            `gorm:"index;not null"`
	Titular     string          `gorm:"not null"`
	ValorMensal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      string          `gorm:"type:varchar(20);not null;default:'Ativa'"`
	CreatedAt   time.Time
	CanceladoEm *time.Time

	Seguro *Seguro `gorm:"foreignKey:SeguroID"`
}

func (Apolice) TableName() string { return "apolices" }
