package repository

import (
	"context"

	"seguradora/internal/dto"
	"seguradora/internal/model"

	"gorm.io/gorm"
)

// AuditoriaRepository is append-only: there is no update or delete.
type AuditoriaRepository interface {
	Append(ctx context.Context, a *model.Auditoria) error
	List(ctx context.Context, filtro dto.FiltroAuditoria) ([]model.Auditoria, error)
	Count(ctx context.Context) (int64, error)
}

type auditoriaRepo struct{ db *gorm.DB }

func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository { return &auditoriaRepo{db: db} }

func (r *auditoriaRepo) Append(ctx context.Context, a *model.Auditoria) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *auditoriaRepo) List(ctx context.Context, filtro dto.FiltroAuditoria) ([]model.Auditoria, error) {
	q := r.db.WithContext(ctx).Model(&model.Auditoria{})
	if filtro.Usuario != "" {
		q = q.Where("usuario = ?", filtro.Usuario)
	}
	if filtro.Entidade != "" {
		q = q.Where("entidade = ?", filtro.Entidade)
	}
	limit := filtro.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []model.Auditoria
	err := q.Order("momento DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *auditoriaRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Auditoria{}).Count(&n).Error
	return n, err
}
