package service

import (
	"context"

	"seguradora/internal/dto"
	"seguradora/internal/model"
	"seguradora/internal/repository"
)

type AuditoriaService interface {
	Registrar(ctx context.Context, e dto.EntradaAuditoria) error
	Listar(ctx context.Context, filtro dto.FiltroAuditoria) ([]dto.AuditoriaResponse, error)
}

type auditoriaService struct {
	repo repository.AuditoriaRepository
}

func NewAuditoriaService(repo repository.AuditoriaRepository) AuditoriaService {
	return &auditoriaService{repo: repo}
}

func (s *auditoriaService) Registrar(ctx context.Context, e dto.EntradaAuditoria) error {
	a := &model.Auditoria{
		Usuario:  e.Usuario,
		Operacao: e.Operacao,
		Entidade: e.Entidade,
		Sucesso:  e.Sucesso,
	}
	if e.EntidadeID != "" {
		id := e.EntidadeID
		a.EntidadeID = &id
	}
	if e.Detalhe != "" {
		d := e.Detalhe
		a.Detalhe = &d
	}
	return s.repo.Append(ctx, a)
}

func (s *auditoriaService) Listar(ctx context.Context, filtro dto.FiltroAuditoria) ([]dto.AuditoriaResponse, error) {
	rows, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditoriaResponse, len(rows))
	for i, r := range rows {
		out[i] = dto.AuditoriaResponse{
			ID:         r.ID.String(),
			Momento:    r.Momento,
			Usuario:    r.Usuario,
			Operacao:   r.Operacao,
			Entidade:   r.Entidade,
			EntidadeID: r.EntidadeID,
			Sucesso:    r.Sucesso,
			Detalhe:    r.Detalhe,
		}
	}
	return out, nil
}
