package repository

import (
	"context"
	"fmt"

	"seguradora/internal/model"

	"gorm.io/gorm"
)

type ApoliceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, a *model.Apolice) error
	NextNumero(ctx context.Context, tx *gorm.DB) (string, error)
	FindByNumero(ctx context.Context, numero string) (*model.Apolice, error)
	FindByNumeroTx(ctx context.Context, tx *gorm.DB, numero string) (*model.Apolice, error)
	List(ctx context.Context) ([]model.Apolice, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, campos map[string]any) error
	ListBySeguros(ctx context.Context, tx *gorm.DB, seguroIDs []uint) ([]model.Apolice, error)
	Delete(ctx context.Context, tx *gorm.DB, ids []uint) error
	DB() *gorm.DB
}

type apoliceRepo struct{ db *gorm.DB }

func NewApoliceRepository(db *gorm.DB) ApoliceRepository { return &apoliceRepo{db: db} }

func (r *apoliceRepo) DB() *gorm.DB { return r.db }

func (r *apoliceRepo) Create(ctx context.Context, tx *gorm.DB, a *model.Apolice) error {
	return tx.WithContext(ctx).Create(a).Error
}

// NextNumero returns MAX(numero)+1 zero-padded to five digits. It must run in
// the same transaction as the insert; the unique index on numero rejects a
// concurrent writer that read the same maximum.
func (r *apoliceRepo) NextNumero(ctx context.Context, tx *gorm.DB) (string, error) {
	var max int64
	err := tx.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(CAST(numero AS INTEGER)), 0) FROM apolices").
		Scan(&max).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", max+1), nil
}

func (r *apoliceRepo) FindByNumero(ctx context.Context, numero string) (*model.Apolice, error) {
	return r.FindByNumeroTx(ctx, r.db, numero)
}

func (r *apoliceRepo) FindByNumeroTx(ctx context.Context, tx *gorm.DB, numero string) (*model.Apolice, error) {
	var a model.Apolice
	err := tx.WithContext(ctx).Preload("Seguro").Where("numero = ?", numero).First(&a).Error
	return &a, err
}

func (r *apoliceRepo) List(ctx context.Context) ([]model.Apolice, error) {
	var as []model.Apolice
	err := r.db.WithContext(ctx).Preload("Seguro").Order("created_at DESC, id DESC").Find(&as).Error
	return as, err
}

func (r *apoliceRepo) Update(ctx context.Context, tx *gorm.DB, id uint, campos map[string]any) error {
	return tx.WithContext(ctx).Model(&model.Apolice{}).Where("id = ?", id).Updates(campos).Error
}

func (r *apoliceRepo) ListBySeguros(ctx context.Context, tx *gorm.DB, seguroIDs []uint) ([]model.Apolice, error) {
	var as []model.Apolice
	if len(seguroIDs) == 0 {
		return as, nil
	}
	err := tx.WithContext(ctx).Where("seguro_id IN ?", seguroIDs).Order("id ASC").Find(&as).Error
	return as, err
}

func (r *apoliceRepo) Delete(ctx context.Context, tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Apolice{}).Error
}
