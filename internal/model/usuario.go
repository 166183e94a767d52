package model

import "time"

const (
	PerfilAdmin   = "admin"
	PerfilComum   = "comum"
	PerfilCliente = "cliente"
)

// Usuario stores back-office operators and client logins.
// Perfil: "admin" | "comum" | "cliente"
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Perfil       string `gorm:"type:varchar(20);not null"`
	// ClienteCPF links a "cliente" login to its client record; nil for every other profile
	ClienteCPF *string `gorm:"column:cliente_cpf"`
	Ativo      bool    `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Usuario) TableName() string { return "usuarios" }

func PerfilValido(p string) bool {
	switch p {
	case PerfilAdmin, PerfilComum, PerfilCliente:
		return true
	}
	return false
}
