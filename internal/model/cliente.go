package model

import "time"

// Cliente is an insured person. CPF is stored as 11 digits, without punctuation.
type Cliente struct {
	ID             uint   `gorm:"primaryKey"`
	Nome           string `gorm:"not null"`
	CPF            string `gorm:"column:cpf;uniqueIndex;not null"`
	DataNascimento string `gorm:"not null"` // DD/MM/YYYY
	Endereco       *string
	Telefone       *string
	Email          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Cliente) TableName() string { return "clientes" }
