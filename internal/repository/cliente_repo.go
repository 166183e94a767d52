package repository

import (
	"context"

	"seguradora/internal/model"

	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByCPF(ctx context.Context, cpf string) (*model.Cliente, error)
	FindByCPFTx(ctx context.Context, tx *gorm.DB, cpf string) (*model.Cliente, error)
	FindByNome(ctx context.Context, nome string) ([]model.Cliente, error)
	List(ctx context.Context) ([]model.Cliente, error)
	UpdateContato(ctx context.Context, cpf string, telefone, email *string) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByCPF(ctx context.Context, cpf string) (*model.Cliente, error) {
	return r.FindByCPFTx(ctx, r.db, cpf)
}

func (r *clienteRepo) FindByCPFTx(ctx context.Context, tx *gorm.DB, cpf string) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.WithContext(ctx).Where("cpf = ?", cpf).First(&c).Error
	return &c, err
}

func (r *clienteRepo) FindByNome(ctx context.Context, nome string) ([]model.Cliente, error) {
	var cs []model.Cliente
	err := r.db.WithContext(ctx).Where("nome = ?", nome).Find(&cs).Error
	return cs, err
}

func (r *clienteRepo) List(ctx context.Context) ([]model.Cliente, error) {
	var cs []model.Cliente
	err := r.db.WithContext(ctx).Order("nome ASC, id ASC").Find(&cs).Error
	return cs, err
}

// UpdateContato changes only the fields that are not nil. It returns false
// when there is nothing to change or no client has that CPF.
func (r *clienteRepo) UpdateContato(ctx context.Context, cpf string, telefone, email *string) (bool, error) {
	campos := map[string]any{}
	if telefone != nil {
		campos["telefone"] = *telefone
	}
	if email != nil {
		campos["email"] = *email
	}
	if len(campos) == 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).Model(&model.Cliente{}).Where("cpf = ?", cpf).Updates(campos)
	return res.RowsAffected > 0, res.Error
}

func (r *clienteRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&model.Cliente{}, id).Error
}
