package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TipoAutomovel   = "Automóvel"
	TipoResidencial = "Residencial"
	TipoVida        = "Vida"
)

// Seguro is an insurance contract. Variant fields depend on Tipo:
// Automóvel uses Modelo/Ano/Placa, Residencial uses EnderecoImovel and
// Vida uses Beneficiarios (comma separated).
type Seguro struct {
	ID      uint   `gorm:"primaryKey"`
	Tipo    string `gorm:"type:varchar(20);not null"`
	Titular string `gorm:"not null;index"`
	// ClienteID is nil for legacy contracts linked to a client by Titular only
	ClienteID *uint           `gorm:"index"`
	ValorBase decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Modelo         *string
	Ano            *int
	Placa          *string
	EnderecoImovel *string
	Beneficiarios  *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Apolices []Apolice `gorm:"foreignKey:SeguroID"`
}

func (Seguro) TableName() string { return "seguros" }

func TipoSeguroValido(t string) bool {
	switch t {
	case TipoAutomovel, TipoResidencial, TipoVida:
		return true
	}
	return false
}
