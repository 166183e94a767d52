package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarSinistroRequest struct {
	NumeroApolice  string `json:"numero_apolice"  validate:"required"`
	Descricao      string `json:"descricao"       validate:"required,min=3"`
	DataOcorrencia string `json:"data_ocorrencia" validate:"required,data"`
}

type EditarSinistroRequest struct {
	Descricao      *string `json:"descricao"       validate:"omitempty,min=3"`
	DataOcorrencia *string `json:"data_ocorrencia" validate:"omitempty,data"`
	Status         *string `json:"status"          validate:"omitempty,oneof=Aberto Fechado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SinistroResponse struct {
	ID             uint       `json:"id"`
	NumeroApolice  string     `json:"numero_apolice"`
	Descricao      string     `json:"descricao"`
	DataOcorrencia string     `json:"data_ocorrencia"`
	Status         string     `json:"status"`
	CriadoEm       time.Time  `json:"criado_em"`
	FechadoEm      *time.Time `json:"fechado_em"`
}

type RegistrarSinistroResponse struct {
	ID uint `json:"id"`
}
