package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAuditoriaImutavel is returned by the gorm hooks when something tries to
// rewrite or remove an audit entry.
var ErrAuditoriaImutavel = errors.New("auditoria: registros não podem ser alterados")

// Auditoria is one append-only audit entry per attempted mutating operation.
type Auditoria struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Momento    time.Time `gorm:"not null;index"`
	Usuario    string    `gorm:"not null;index"`
	Operacao   string    `gorm:"not null"`
	Entidade   string    `gorm:"not null"`
	EntidadeID *string
	Sucesso    bool `gorm:"not null"`
	Detalhe    *string
}

func (Auditoria) TableName() string { return "auditoria" }

func (a *Auditoria) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Momento.IsZero() {
		a.Momento = time.Now().UTC()
	}
	return nil
}

func (a *Auditoria) BeforeUpdate(_ *gorm.DB) error { return ErrAuditoriaImutavel }

func (a *Auditoria) BeforeDelete(_ *gorm.DB) error { return ErrAuditoriaImutavel }
