package repository

import (
	"context"

	"seguradora/internal/model"

	"gorm.io/gorm"
)

type SeguroRepository interface {
	Create(ctx context.Context, s *model.Seguro) error
	FindByID(ctx context.Context, id uint) (*model.Seguro, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*model.Seguro, error)
	List(ctx context.Context) ([]model.Seguro, error)
	Update(ctx context.Context, id uint, campos map[string]any) error
	// ListByCliente returns the contracts linked to a client: by cliente_id, plus
	// legacy rows without cliente_id whose titular equals the client's name.
	ListByCliente(ctx context.Context, tx *gorm.DB, clienteID uint, nome string) ([]model.Seguro, error)
	Delete(ctx context.Context, tx *gorm.DB, ids []uint) error
	DB() *gorm.DB
}

type seguroRepo struct{ db *gorm.DB }

func NewSeguroRepository(db *gorm.DB) SeguroRepository { return &seguroRepo{db: db} }

func (r *seguroRepo) DB() *gorm.DB { return r.db }

func (r *seguroRepo) Create(ctx context.Context, s *model.Seguro) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *seguroRepo) FindByID(ctx context.Context, id uint) (*model.Seguro, error) {
	return r.FindByIDTx(ctx, r.db, id)
}

func (r *seguroRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uint) (*model.Seguro, error) {
	var s model.Seguro
	err := tx.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *seguroRepo) List(ctx context.Context) ([]model.Seguro, error) {
	var ss []model.Seguro
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&ss).Error
	return ss, err
}

func (r *seguroRepo) Update(ctx context.Context, id uint, campos map[string]any) error {
	return r.db.WithContext(ctx).Model(&model.Seguro{}).Where("id = ?", id).Updates(campos).Error
}

func (r *seguroRepo) ListByCliente(ctx context.Context, tx *gorm.DB, clienteID uint, nome string) ([]model.Seguro, error) {
	var ss []model.Seguro
	err := tx.WithContext(ctx).
		Where("cliente_id = ? OR (cliente_id IS NULL AND titular = ?)", clienteID, nome).
		Order("id ASC").
		Find(&ss).Error
	return ss, err
}

func (r *seguroRepo) Delete(ctx context.Context, tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Seguro{}).Error
}
