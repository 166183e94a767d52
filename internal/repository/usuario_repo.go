package repository

import (
	"context"

	"seguradora/internal/model"

	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	// FindByUsername does not filter inactive users; callers decide.
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, username string, campos map[string]any) (bool, error)
	Delete(ctx context.Context, username string) (bool, error)
	// DeleteByClienteCPF removes the "cliente" logins bound to a client.
	DeleteByClienteCPF(ctx context.Context, tx *gorm.DB, cpf string) (int64, error)
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var users []model.Usuario
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *usuarioRepo) Update(ctx context.Context, username string, campos map[string]any) (bool, error) {
	if len(campos) == 0 {
		return false, nil
	}
	res := r.db.WithContext(ctx).Model(&model.Usuario{}).Where("username = ?", username).Updates(campos)
	return res.RowsAffected > 0, res.Error
}

func (r *usuarioRepo) Delete(ctx context.Context, username string) (bool, error) {
	res := r.db.WithContext(ctx).Where("username = ?", username).Delete(&model.Usuario{})
	return res.RowsAffected > 0, res.Error
}

func (r *usuarioRepo) DeleteByClienteCPF(ctx context.Context, tx *gorm.DB, cpf string) (int64, error) {
	res := tx.WithContext(ctx).
		Where("perfil = ? AND cliente_cpf = ?", model.PerfilCliente, cpf).
		Delete(&model.Usuario{})
	return res.RowsAffected, res.Error
}
