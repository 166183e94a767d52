package service

import (
	"context"
	"fmt"

	"seguradora/internal/model"
	"seguradora/internal/repository"

	"gorm.io/gorm"
)

// CascadePolicy says what deleting an entity does to its dependents.
type CascadePolicy int

const (
	// StrictBlock refuses the deletion while any policy depends on the entity.
	StrictBlock CascadePolicy = iota
	// ForceableCascade refuses by default; with force it removes every dependent.
	ForceableCascade
)

func (p CascadePolicy) String() string {
	if p == ForceableCascade {
		return "forceable_cascade"
	}
	return "strict_block"
}

const (
	EntidadeCliente  = "cliente"
	EntidadeSeguro   = "seguro"
	EntidadeApolice  = "apolice"
	EntidadeSinistro = "sinistro"
	EntidadeUsuario  = "usuario"
)

var politicasExclusao = map[string]CascadePolicy{
	EntidadeCliente: ForceableCascade,
	EntidadeSeguro:  StrictBlock,
}

// planoExclusao lists everything a deletion would remove. It is built and
// executed inside the same transaction.
type planoExclusao struct {
	clienteID  *uint
	clienteCPF string
	seguros   []uint
	apolices  []uint
	sinistros []uint
}

func (p planoExclusao) temApolices() bool { return len(p.apolices) > 0 }

type cascata struct {
	clientes  repository.ClienteRepository
	seguros   repository.SeguroRepository
	apolices  repository.ApoliceRepository
	sinistros repository.SinistroRepository
	// usuarios is only needed when the cascade can reach a client.
	usuarios repository.UsuarioRepository
}

func (c *cascata) planejarCliente(ctx context.Context, tx *gorm.DB, cli *model.Cliente) (planoExclusao, error) {
	plano := planoExclusao{clienteID: &cli.ID, clienteCPF: cli.CPF}
	seguros, err := c.seguros.ListByCliente(ctx, tx, cli.ID, cli.Nome)
	if err != nil {
		return plano, fmt.Errorf("seguros do cliente: %w", err)
	}
	for _, s := range seguros {
		plano.seguros = append(plano.seguros, s.ID)
	}
	return plano, c.completar(ctx, tx, &plano)
}

func (c *cascata) planejarSeguro(ctx context.Context, tx *gorm.DB, seguroID uint) (planoExclusao, error) {
	plano := planoExclusao{seguros: []uint{seguroID}}
	return plano, c.completar(ctx, tx, &plano)
}

// completar adds the policies of the planned contracts and their claims.
func (c *cascata) completar(ctx context.Context, tx *gorm.DB, plano *planoExclusao) error {
	apolices, err := c.apolices.ListBySeguros(ctx, tx, plano.seguros)
	if err != nil {
		return fmt.Errorf("apólices dependentes: %w", err)
	}
	for _, a := range apolices {
		plano.apolices = append(plano.apolices, a.ID)
	}
	sinistros, err := c.sinistros.ListByApolices(ctx, tx, plano.apolices)
	if err != nil {
		return fmt.Errorf("sinistros dependentes: %w", err)
	}
	for _, s := range sinistros {
		plano.sinistros = append(plano.sinistros, s.ID)
	}
	return nil
}

// aplicar enforces the entity's policy and then deletes claims, policies,
// contracts, the client's logins and finally the client, in that order.
func (c *cascata) aplicar(ctx context.Context, tx *gorm.DB, entidade string, forcar bool, plano planoExclusao, bloqueio error) error {
	politica := politicasExclusao[entidade]
	if plano.temApolices() && (politica == StrictBlock || !forcar) {
		return bloqueio
	}
	if err := c.sinistros.Delete(ctx, tx, plano.sinistros); err != nil {
		return fmt.Errorf("excluir sinistros: %w", err)
	}
	if err := c.apolices.Delete(ctx, tx, plano.apolices); err != nil {
		return fmt.Errorf("excluir apólices: %w", err)
	}
	if err := c.seguros.Delete(ctx, tx, plano.seguros); err != nil {
		return fmt.Errorf("excluir seguros: %w", err)
	}
	if plano.clienteID != nil {
		if _, err := c.usuarios.DeleteByClienteCPF(ctx, tx, plano.clienteCPF); err != nil {
			return fmt.Errorf("excluir acessos do cliente: %w", err)
		}
		if err := c.clientes.Delete(ctx, tx, *plano.clienteID); err != nil {
			return fmt.Errorf("excluir cliente: %w", err)
		}
	}
	return nil
}
