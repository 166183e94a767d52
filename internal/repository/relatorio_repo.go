package repository

import (
	"context"

	"seguradora/internal/dto"
	"seguradora/internal/model"

	"gorm.io/gorm"
)

// RelatorioRepository runs the read-only aggregate queries behind the reports.
type RelatorioRepository interface {
	ReceitaMensal(ctx context.Context) ([]dto.ReceitaMensalItem, error)
	TopClientes(ctx context.Context, limit int) ([]dto.TopClienteItem, error)
	SinistrosPorStatus(ctx context.Context) ([]dto.SinistrosStatusItem, error)
	SinistrosPorPeriodo(ctx context.Context, de, ate string) ([]dto.SinistrosPeriodoItem, error)
}

type relatorioRepo struct{ db *gorm.DB }

func NewRelatorioRepository(db *gorm.DB) RelatorioRepository { return &relatorioRepo{db: db} }

// anoMes renders a timestamp column as YYYY-MM in the current dialect.
func (r *relatorioRepo) anoMes(col string) string {
	if r.db.Dialector.Name() == "postgres" {
		return "to_char(" + col + ", 'YYYY-MM')"
	}
	return "strftime('%Y-%m', " + col + ")"
}

func (r *relatorioRepo) ReceitaMensal(ctx context.Context) ([]dto.ReceitaMensalItem, error) {
	var out []dto.ReceitaMensalItem
	mes := r.anoMes("created_at")
	err := r.db.WithContext(ctx).Model(&model.Apolice{}).
		Select(mes+" AS mes, SUM(valor_mensal) AS total").
		Where("status = ?", model.ApoliceAtiva).
		Group(mes).
		Order("mes DESC").
		Scan(&out).Error
	return out, err
}

func (r *relatorioRepo) TopClientes(ctx context.Context, limit int) ([]dto.TopClienteItem, error) {
	var out []dto.TopClienteItem
	err := r.db.WithContext(ctx).Table("apolices a").
		Select("s.titular AS titular, SUM(s.valor_base) AS valor_segurado").
		Joins("JOIN seguros s ON s.id = a.seguro_id").
		Where("a.status = ?", model.ApoliceAtiva).
		Group("s.titular").
		Order("valor_segurado DESC, s.titular ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *relatorioRepo) SinistrosPorStatus(ctx context.Context) ([]dto.SinistrosStatusItem, error) {
	var out []dto.SinistrosStatusItem
	err := r.db.WithContext(ctx).Model(&model.Sinistro{}).
		Select("status, COUNT(*) AS quantidade").
		Group("status").
		Order("status ASC").
		Scan(&out).Error
	return out, err
}

// SinistrosPorPeriodo counts claims per registration month within [de, ate],
// both given as YYYY-MM.
func (r *relatorioRepo) SinistrosPorPeriodo(ctx context.Context, de, ate string) ([]dto.SinistrosPeriodoItem, error) {
	var out []dto.SinistrosPeriodoItem
	mes := r.anoMes("created_at")
	err := r.db.WithContext(ctx).Model(&model.Sinistro{}).
		Select(mes+" AS mes, COUNT(*) AS quantidade").
		Where(mes+" BETWEEN ? AND ?", de, ate).
		Group(mes).
		Order("mes ASC").
		Scan(&out).Error
	return out, err
}
