package repository

import (
	"context"
	"time"

	"seguradora/internal/model"

	"gorm.io/gorm"
)

type SinistroRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sinistro) error
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*model.Sinistro, error)
	List(ctx context.Context) ([]model.Sinistro, error)
	// FecharAbertos closes every open claim of the policy and returns how many changed.
	FecharAbertos(ctx context.Context, tx *gorm.DB, apoliceID uint, em time.Time) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, campos map[string]any) error
	ListByApolices(ctx context.Context, tx *gorm.DB, apoliceIDs []uint) ([]model.Sinistro, error)
	Delete(ctx context.Context, tx *gorm.DB, ids []uint) error
	DB() *gorm.DB
}

type sinistroRepo struct{ db *gorm.DB }

func NewSinistroRepository(db *gorm.DB) SinistroRepository { return &sinistroRepo{db: db} }

func (r *sinistroRepo) DB() *gorm.DB { return r.db }

func (r *sinistroRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sinistro) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *sinistroRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*model.Sinistro, error) {
	var s model.Sinistro
	err := tx.WithContext(ctx).Preload("Apolice").First(&s, id).Error
	return &s, err
}

func (r *sinistroRepo) List(ctx context.Context) ([]model.Sinistro, error) {
	var ss []model.Sinistro
	err := r.db.WithContext(ctx).Preload("Apolice").Order("created_at DESC, id DESC").Find(&ss).Error
	return ss, err
}

func (r *sinistroRepo) FecharAbertos(ctx context.Context, tx *gorm.DB, apoliceID uint, em time.Time) (int64, error) {
	res := tx.WithContext(ctx).Model(&model.Sinistro{}).
		Where("apolice_id = ? AND status = ?", apoliceID, model.SinistroAberto).
		Updates(map[string]any{"status": model.SinistroFechado, "fechado_em": em})
	return res.RowsAffected, res.Error
}

func (r *sinistroRepo) Update(ctx context.Context, tx *gorm.DB, id uint, campos map[string]any) error {
	return tx.WithContext(ctx).Model(&model.Sinistro{}).Where("id = ?", id).Updates(campos).Error
}

func (r *sinistroRepo) ListByApolices(ctx context.Context, tx *gorm.DB, apoliceIDs []uint) ([]model.Sinistro, error) {
	var ss []model.Sinistro
	if len(apoliceIDs) == 0 {
		return ss, nil
	}
	err := tx.WithContext(ctx).Where("apolice_id IN ?", apoliceIDs).Order("id ASC").Find(&ss).Error
	return ss, err
}

func (r *sinistroRepo) Delete(ctx context.Context, tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Sinistro{}).Error
}
