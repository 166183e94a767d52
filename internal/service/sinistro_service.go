package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"seguradora/internal/dto"
	"seguradora/internal/model"
	"seguradora/internal/repository"
	"seguradora/internal/validation"

	"gorm.io/gorm"
)

type SinistroService interface {
	Registrar(ctx context.Context, req dto.RegistrarSinistroRequest) (uint, error)
	Fechar(ctx context.Context, numeroApolice string) (bool, error)
	Editar(ctx context.Context, id uint, req dto.EditarSinistroRequest) (bool, error)
	Listar(ctx context.Context) ([]dto.SinistroResponse, error)
}

type sinistroService struct {
	sinistros repository.SinistroRepository
	apolices  repository.ApoliceRepository
}

func NewSinistroService(sinistros repository.SinistroRepository, apolices repository.ApoliceRepository) SinistroService {
	return &sinistroService{sinistros: sinistros, apolices: apolices}
}

// Registrar opens a claim against an active policy. The date is validated
// before storage is touched. A missing policy yields ErrApoliceNaoEncontrada,
// a cancelled one ErrApoliceNaoAtiva.
func (s *sinistroService) Registrar(ctx context.Context, req dto.RegistrarSinistroRequest) (uint, error) {
	if err := validation.Struct(req); err != nil {
		return 0, err
	}

	var id uint
	err := runTx(ctx, s.sinistros.DB(), func(tx *gorm.DB) error {
		a, err := s.apolices.FindByNumeroTx(ctx, tx, req.NumeroApolice)
		if repository.IsNotFound(err) {
			return ErrApoliceNaoEncontrada
		}
		if err != nil {
			return fmt.Errorf("buscar apólice %s: %w", req.NumeroApolice, err)
		}
		if a.Status != model.ApoliceAtiva {
			return ErrApoliceNaoAtiva
		}

		sin := &model.Sinistro{
			ApoliceID:      a.ID,
			Descricao:      strings.TrimSpace(req.Descricao),
			DataOcorrencia: req.DataOcorrencia,
			Status:         model.SinistroAberto,
		}
		if err := s.sinistros.Create(ctx, tx, sin); err != nil {
			return err
		}
		id = sin.ID
		return nil
	})
	return id, err
}

// Fechar closes every open claim of the policy. It returns false when the
// policy does not exist or had nothing open.
func (s *sinistroService) Fechar(ctx context.Context, numeroApolice string) (bool, error) {
	ok := false
	err := runTx(ctx, s.sinistros.DB(), func(tx *gorm.DB) error {
		a, err := s.apolices.FindByNumeroTx(ctx, tx, numeroApolice)
		if repository.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("buscar apólice %s: %w", numeroApolice, err)
		}
		n, err := s.sinistros.FecharAbertos(ctx, tx, a.ID, time.Now().UTC())
		if err != nil {
			return err
		}
		ok = n > 0
		return nil
	})
	return ok, err
}

// Editar changes description, date or status. Reopening a claim requires its
// policy to still be active.
func (s *sinistroService) Editar(ctx context.Context, id uint, req dto.EditarSinistroRequest) (bool, error) {
	if err := validation.Struct(req); err != nil {
		return false, err
	}

	campos := map[string]any{}
	if req.Descricao != nil {
		campos["descricao"] = strings.TrimSpace(*req.Descricao)
	}
	if req.DataOcorrencia != nil {
		campos["data_ocorrencia"] = *req.DataOcorrencia
	}

	ok := false
	err := runTx(ctx, s.sinistros.DB(), func(tx *gorm.DB) error {
		sin, err := s.sinistros.FindByIDTx(ctx, tx, id)
		if repository.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("buscar sinistro %d: %w", id, err)
		}

		if req.Status != nil && *req.Status != sin.Status {
			switch *req.Status {
			case model.SinistroFechado:
				campos["status"] = model.SinistroFechado
				campos["fechado_em"] = time.Now().UTC()
			case model.SinistroAberto:
				if sin.Apolice == nil || sin.Apolice.Status != model.ApoliceAtiva {
					return ErrApoliceNaoAtiva
				}
				campos["status"] = model.SinistroAberto
				campos["fechado_em"] = nil
			}
		}
		if len(campos) == 0 {
			return nil
		}
		if err := s.sinistros.Update(ctx, tx, sin.ID, campos); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// Listar returns every claim with its policy number, most recent first.
func (s *sinistroService) Listar(ctx context.Context) ([]dto.SinistroResponse, error) {
	ss, err := s.sinistros.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SinistroResponse, len(ss))
	for i, sin := range ss {
		out[i] = dto.SinistroResponse{
			ID:             sin.ID,
			Descricao:      sin.Descricao,
			DataOcorrencia: sin.DataOcorrencia,
			Status:         sin.Status,
			CriadoEm:       sin.CreatedAt,
			FechadoEm:      sin.FechadoEm,
		}
		if sin.Apolice != nil {
			out[i].NumeroApolice = sin.Apolice.Numero
		}
	}
	return out, nil
}
