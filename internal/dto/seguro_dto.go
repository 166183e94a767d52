package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CriarSeguroRequest creates a contract. Titular may be omitted when ClienteCPF
// is given; the client's name is used instead.
type CriarSeguroRequest struct {
	Tipo       string          `json:"tipo"        validate:"required,oneof=Automóvel Residencial Vida"`
	Titular    string          `json:"titular"`
	ClienteCPF *string         `json:"cliente_cpf" validate:"omitempty,cpf"`
	ValorBase  decimal.Decimal `json:"valor_base"  validate:"required,gt=0"`

	Modelo         *string  `json:"modelo"`
	Ano            *int     `json:"ano"             validate:"omitempty,gte=1900,lte=2100"`
	Placa          *string  `json:"placa"`
	EnderecoImovel *string  `json:"endereco_imovel"`
	Beneficiarios  []string `json:"beneficiarios"`
}

type AtualizarSeguroRequest struct {
	Titular        *string          `json:"titular"         validate:"omitempty,min=1"`
	ValorBase      *decimal.Decimal `json:"valor_base"      validate:"omitempty,gt=0"`
	Modelo         *string          `json:"modelo"`
	Ano            *int             `json:"ano"             validate:"omitempty,gte=1900,lte=2100"`
	Placa          *string          `json:"placa"`
	EnderecoImovel *string          `json:"endereco_imovel"`
	Beneficiarios  []string         `json:"beneficiarios"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SeguroResponse struct {
	ID             uint            `json:"id"`
	Tipo           string          `json:"tipo"`
	Titular        string          `json:"titular"`
	ClienteID      *uint           `json:"cliente_id"`
	ValorBase      decimal.Decimal `json:"valor_base"`
	Modelo         *string         `json:"modelo,omitempty"`
	Ano            *int            `json:"ano,omitempty"`
	Placa          *string         `json:"placa,omitempty"`
	EnderecoImovel *string         `json:"endereco_imovel,omitempty"`
	Beneficiarios  []string        `json:"beneficiarios,omitempty"`
	CriadoEm       time.Time       `json:"criado_em"`
}
