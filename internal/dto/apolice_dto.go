package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type EmitirApoliceRequest struct {
	SeguroID uint `json:"seguro_id" validate:"required"`
}

type EditarApoliceRequest struct {
	ValorMensal *decimal.Decimal `json:"valor_mensal" validate:"omitempty,gt=0"`
	Titular     *string          `json:"titular"      validate:"omitempty,min=1"`
	Status      *string          `json:"status"       validate:"omitempty,oneof=Ativa Cancelada"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ApoliceResponse struct {
	Numero      string          `json:"numero"`
	SeguroID    uint            `json:"seguro_id"`
	Tipo        string          `json:"tipo"`
	Titular     string          `json:"titular"`
	ValorMensal decimal.Decimal `json:"valor_mensal"`
	Status      string          `json:"status"`
	CriadoEm    time.Time       `json:"criado_em"`
	CanceladoEm *time.Time      `json:"cancelado_em"`
}

type EmitirApoliceResponse struct {
	Numero string `json:"numero"`
}
