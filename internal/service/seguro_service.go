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

type SeguroService interface {
	Criar(ctx context.Context, req dto.CriarSeguroRequest) (*dto.SeguroResponse, error)
	Atualizar(ctx context.Context, id uint, req dto.AtualizarSeguroRequest) (bool, error)
	ObterPorID(ctx context.Context, id uint) (*dto.SeguroResponse, error)
	Listar(ctx context.Context) ([]dto.SeguroResponse, error)
	Excluir(ctx context.Context, id uint) (bool, error)
}

type seguroService struct {
	seguros  repository.SeguroRepository
	clientes repository.ClienteRepository
	cascata  *cascata
}

func NewSeguroService(
	seguros repository.SeguroRepository,
	clientes repository.ClienteRepository,
	apolices repository.ApoliceRepository,
	sinistros repository.SinistroRepository,
) SeguroService {
	return &seguroService{
		seguros:  seguros,
		clientes: clientes,
		cascata:  &cascata{clientes: clientes, seguros: seguros, apolices: apolices, sinistros: sinistros},
	}
}

// Criar links the contract to a client when it can: through cliente_cpf, or
// when exactly one client carries the titular's name. Otherwise cliente_id
// stays empty and the titular alone identifies the holder.
func (s *seguroService) Criar(ctx context.Context, req dto.CriarSeguroRequest) (*dto.SeguroResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := validarVariante(req.Tipo, req.Modelo, req.Ano, req.Placa, req.EnderecoImovel, req.Beneficiarios); err != nil {
		return nil, err
	}

	seg := &model.Seguro{
		Tipo:      req.Tipo,
		Titular:   strings.TrimSpace(req.Titular),
		ValorBase: req.ValorBase.Round(2),
	}

	if req.ClienteCPF != nil {
		c, err := s.clientes.FindByCPF(ctx, validation.LimparCPF(*req.ClienteCPF))
		if repository.IsNotFound(err) {
			return nil, ErrCPFInexistente
		}
		if err != nil {
			return nil, fmt.Errorf("buscar cliente: %w", err)
		}
		seg.ClienteID = &c.ID
		if seg.Titular == "" {
			seg.Titular = c.Nome
		}
	} else {
		if seg.Titular == "" {
			return nil, apierror.Invalid("titular", "Campo obrigatório.")
		}
		homonimos, err := s.clientes.FindByNome(ctx, seg.Titular)
		if err != nil {
			return nil, fmt.Errorf("buscar titular: %w", err)
		}
		if len(homonimos) == 1 {
			seg.ClienteID = &homonimos[0].ID
		}
	}

	switch req.Tipo {
	case model.TipoAutomovel:
		seg.Modelo, seg.Ano, seg.Placa = trimPtr(req.Modelo), req.Ano, upperPtr(req.Placa)
	case model.TipoResidencial:
		seg.EnderecoImovel = trimPtr(req.EnderecoImovel)
	case model.TipoVida:
		seg.Beneficiarios = juntarBeneficiarios(req.Beneficiarios)
	}

	if err := s.seguros.Create(ctx, seg); err != nil {
		return nil, err
	}
	resp := mapSeguro(seg)
	return &resp, nil
}

// Atualizar edits contract fields. Variant fields of another contract type are
// rejected. Premiums of policies already issued are not recalculated.
func (s *seguroService) Atualizar(ctx context.Context, id uint, req dto.AtualizarSeguroRequest) (bool, error) {
	if err := validation.Struct(req); err != nil {
		return false, err
	}
	seg, err := s.seguros.FindByID(ctx, id)
	if repository.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("buscar seguro %d: %w", id, err)
	}

	campos := map[string]any{}
	if req.Titular != nil {
		campos["titular"] = strings.TrimSpace(*req.Titular)
	}
	if req.ValorBase != nil {
		campos["valor_base"] = req.ValorBase.Round(2)
	}

	fora := map[string]string{}
	automovel := req.Modelo != nil || req.Ano != nil || req.Placa != nil
	if automovel && seg.Tipo != model.TipoAutomovel {
		fora["modelo"] = "Campo exclusivo de seguro Automóvel."
	}
	if req.EnderecoImovel != nil && seg.Tipo != model.TipoResidencial {
		fora["endereco_imovel"] = "Campo exclusivo de seguro Residencial."
	}
	if req.Beneficiarios != nil && seg.Tipo != model.TipoVida {
		fora["beneficiarios"] = "Campo exclusivo de seguro Vida."
	}
	if len(fora) > 0 {
		return false, apierror.InvalidFields(fora)
	}

	if req.Modelo != nil {
		campos["modelo"] = strings.TrimSpace(*req.Modelo)
	}
	if req.Ano != nil {
		campos["ano"] = *req.Ano
	}
	if req.Placa != nil {
		campos["placa"] = strings.ToUpper(strings.TrimSpace(*req.Placa))
	}
	if req.EnderecoImovel != nil {
		campos["endereco_imovel"] = strings.TrimSpace(*req.EnderecoImovel)
	}
	if req.Beneficiarios != nil {
		b := juntarBeneficiarios(req.Beneficiarios)
		if b == nil {
			return false, apierror.Invalid("beneficiarios", "Informe ao menos um beneficiário.")
		}
		campos["beneficiarios"] = *b
	}

	if len(campos) == 0 {
		return false, nil
	}
	if err := s.seguros.Update(ctx, id, campos); err != nil {
		return false, err
	}
	return true, nil
}

func (s *seguroService) ObterPorID(ctx context.Context, id uint) (*dto.SeguroResponse, error) {
	seg, err := s.seguros.FindByID(ctx, id)
	if repository.IsNotFound(err) {
		return nil, ErrSeguroNaoEncontrado
	}
	if err != nil {
		return nil, err
	}
	resp := mapSeguro(seg)
	return &resp, nil
}

func (s *seguroService) Listar(ctx context.Context) ([]dto.SeguroResponse, error) {
	ss, err := s.seguros.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SeguroResponse, len(ss))
	for i := range ss {
		out[i] = mapSeguro(&ss[i])
	}
	return out, nil
}

// Excluir removes a contract that no policy references. It returns false when
// the contract does not exist.
func (s *seguroService) Excluir(ctx context.Context, id uint) (bool, error) {
	ok := false
	err := runTx(ctx, s.seguros.DB(), func(tx *gorm.DB) error {
		if _, err := s.seguros.FindByIDTx(ctx, tx, id); err != nil {
			if repository.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("buscar seguro %d: %w", id, err)
		}
		plano, err := s.cascata.planejarSeguro(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.cascata.aplicar(ctx, tx, EntidadeSeguro, false, plano, ErrSeguroComApolices); err != nil {
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

func validarVariante(tipo string, modelo *string, ano *int, placa, endereco *string, beneficiarios []string) error {
	faltando := map[string]string{}
	vazio := func(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }
	switch tipo {
	case model.TipoAutomovel:
		if vazio(modelo) {
			faltando["modelo"] = "Campo obrigatório."
		}
		if ano == nil {
			faltando["ano"] = "Campo obrigatório."
		}
		if vazio(placa) {
			faltando["placa"] = "Campo obrigatório."
		}
	case model.TipoResidencial:
		if vazio(endereco) {
			faltando["endereco_imovel"] = "Campo obrigatório."
		}
	case model.TipoVida:
		if juntarBeneficiarios(beneficiarios) == nil {
			faltando["beneficiarios"] = "Informe ao menos um beneficiário."
		}
	}
	if len(faltando) > 0 {
		return apierror.InvalidFields(faltando)
	}
	return nil
}

func juntarBeneficiarios(nomes []string) *string {
	var limpos []string
	for _, n := range nomes {
		if n = strings.TrimSpace(n); n != "" {
			limpos = append(limpos, n)
		}
	}
	if len(limpos) == 0 {
		return nil
	}
	j := strings.Join(limpos, ", ")
	return &j
}

func separarBeneficiarios(s *string) []string {
	if s == nil || *s == "" {
		return nil
	}
	partes := strings.Split(*s, ",")
	for i := range partes {
		partes[i] = strings.TrimSpace(partes[i])
	}
	return partes
}

func upperPtr(s *string) *string {
	t := trimPtr(s)
	if t == nil {
		return nil
	}
	u := strings.ToUpper(*t)
	return &u
}

func mapSeguro(s *model.Seguro) dto.SeguroResponse {
	return dto.SeguroResponse{
		ID:             s.ID,
		Tipo:           s.Tipo,
		Titular:        s.Titular,
		ClienteID:      s.ClienteID,
		ValorBase:      s.ValorBase,
		Modelo:         s.Modelo,
		Ano:            s.Ano,
		Placa:          s.Placa,
		EnderecoImovel: s.EnderecoImovel,
		Beneficiarios:  separarBeneficiarios(s.Beneficiarios),
		CriadoEm:       s.CreatedAt,
	}
}
