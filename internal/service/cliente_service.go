package service

import (
	"context"
	"fmt"
	"strings"

	"seguradora/internal/apierror"
	"seguradora/internal/dto"
	"seguradora/internal/model"
	"seguradora/internal/repository"
	"seguradora/internal/validation"

	"gorm.io/gorm"
)

type ClienteService interface {
	Cadastrar(ctx context.Context, req dto.CadastrarClienteRequest) (*dto.ClienteResponse, error)
	AtualizarContato(ctx context.Context, cpf string, req dto.AtualizarContatoRequest) (bool, error)
	ObterPorCPF(ctx context.Context, cpf string) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Excluir(ctx context.Context, cpf string, forcar bool) (bool, error)
}

type clienteService struct {
	clientes repository.ClienteRepository
	cascata  *cascata
}

func NewClienteService(
	clientes repository.ClienteRepository,
	seguros repository.SeguroRepository,
	apolices repository.ApoliceRepository,
	sinistros repository.SinistroRepository,
	usuarios repository.UsuarioRepository,
) ClienteService {
	return &clienteService{
		clientes: clientes,
		cascata: &cascata{
			clientes:  clientes,
			seguros:   seguros,
			apolices:  apolices,
			sinistros: sinistros,
			usuarios:  usuarios,
		},
	}
}

func (s *clienteService) Cadastrar(ctx context.Context, req dto.CadastrarClienteRequest) (*dto.ClienteResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	c := &model.Cliente{
		Nome:           strings.TrimSpace(req.Nome),
		CPF:            validation.LimparCPF(req.CPF),
		DataNascimento: req.DataNascimento,
		Endereco:       trimPtr(req.Endereco),
		Email:          lowerPtr(req.Email),
	}
	if req.Telefone != nil {
		tel := validation.FormatarTelefone(*req.Telefone)
		c.Telefone = &tel
	}
	if err := s.clientes.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apierror.Conflict("Cliente já cadastrado.", err)
		}
		return nil, err
	}
	resp := mapCliente(c)
	return &resp, nil
}

func (s *clienteService) AtualizarContato(ctx context.Context, cpf string, req dto.AtualizarContatoRequest) (bool, error) {
	if err := validation.Struct(req); err != nil {
		return false, err
	}
	var tel *string
	if req.Telefone != nil {
		t := validation.FormatarTelefone(*req.Telefone)
		tel = &t
	}
	return s.clientes.UpdateContato(ctx, validation.LimparCPF(cpf), tel, lowerPtr(req.Email))
}

func (s *clienteService) ObterPorCPF(ctx context.Context, cpf string) (*dto.ClienteResponse, error) {
	c, err := s.clientes.FindByCPF(ctx, validation.LimparCPF(cpf))
	if repository.IsNotFound(err) {
		return nil, ErrClienteNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	resp := mapCliente(c)
	return &resp, nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	cs, err := s.clientes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, len(cs))
	for i := range cs {
		out[i] = mapCliente(&cs[i])
	}
	return out, nil
}

// ── Excluir ──────────────────────────────────────────────────────────────────
// Dependents are the client's contracts (by cliente_id, or by titular for legacy
// rows), their policies and those policies' claims. Without forcar any
// dependent policy blocks the deletion and nothing is written. Discovery and
// removal run in one transaction.

func (s *clienteService) Excluir(ctx context.Context, cpf string, forcar bool) (bool, error) {
	ok := false
	err := runTx(ctx, s.clientes.DB(), func(tx *gorm.DB) error {
		c, err := s.clientes.FindByCPFTx(ctx, tx, validation.LimparCPF(cpf))
		if repository.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("buscar cliente: %w", err)
		}
		plano, err := s.cascata.planejarCliente(ctx, tx, c)
		if err != nil {
			return err
		}
		if err := s.cascata.aplicar(ctx, tx, EntidadeCliente, forcar, plano, ErrClienteComVinculos); err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

func mapCliente(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:             c.ID,
		Nome:           c.Nome,
		CPF:            c.CPF,
		DataNascimento: c.DataNascimento,
		Endereco:       c.Endereco,
		Telefone:       c.Telefone,
		Email:          c.Email,
		CriadoEm:       c.CreatedAt,
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func lowerPtr(s *string) *string {
	t := trimPtr(s)
	if t == nil {
		return nil
	}
	l := strings.ToLower(*t)
	return &l
}
