package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CadastrarClienteRequest struct {
	Nome           string  `json:"nome"            validate:"required,min=2"`
	CPF            string  `json:"cpf"             validate:"required,cpf"`
	DataNascimento string  `json:"data_nascimento" validate:"required,data"`
	Endereco       *string `json:"endereco"`
	Telefone       *string `json:"telefone"        validate:"omitempty,telefone"`
	Email          *string `json:"email"           validate:"omitempty,email"`
}

type AtualizarContatoRequest struct {
	Telefone *string `json:"telefone" validate:"omitempty,telefone"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID             uint      `json:"id"`
	Nome           string    `json:"nome"`
	CPF            string    `json:"cpf"`
	DataNascimento string    `json:"data_nascimento"`
	Endereco       *string   `json:"endereco"`
	Telefone       *string   `json:"telefone"`
	Email          *string   `json:"email"`
	CriadoEm       time.Time `json:"criado_em"`
}
