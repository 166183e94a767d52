package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"seguradora/internal/apierror"
	"seguradora/internal/dto"
	"seguradora/internal/model"
	"seguradora/internal/repository"
	"seguradora/internal/validation"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ApoliceService interface {
	Emitir(ctx context.Context, seguroID uint) (string, error)
	Cancelar(ctx context.Context, numero string) (bool, error)
	Editar(ctx context.Context, numero string, req dto.EditarApoliceRequest) (bool, error)
	ObterPorNumero(ctx context.Context, numero string) (*dto.ApoliceResponse, error)
	Listar(ctx context.Context) ([]dto.ApoliceResponse, error)
}

type apoliceService struct {
	apolices repository.ApoliceRepository
	seguros  repository.SeguroRepository
}

func NewApoliceService(apolices repository.ApoliceRepository, seguros repository.SeguroRepository) ApoliceService {
	return &apoliceService{apolices: apolices, seguros: seguros}
}

// Monthly premium rate per contract type.
var taxasMensais = map[string]decimal.Decimal{
	model.TipoAutomovel:   decimal.RequireFromString("0.03"),
	model.TipoResidencial: decimal.RequireFromString("0.01"),
	model.TipoVida:        decimal.RequireFromString("0.015"),
}

// ValorMensal is base × rate(tipo), rounded to cents.
func ValorMensal(tipo string, base decimal.Decimal) (decimal.Decimal, error) {
	taxa, ok := taxasMensais[tipo]
	if !ok {
		return decimal.Zero, apierror.Invalid("tipo", "Tipo de seguro inválido.")
	}
	return base.Mul(taxa).Round(2), nil
}

const tentativasNumero = 3

// ── Emitir ───────────────────────────────────────────────────────────────────
// Contract lookup, premium, number allocation and insert share one transaction.
// A concurrent writer that took the same number makes the insert fail on the
// unique index; the whole transaction is then retried.

func (s *apoliceService) Emitir(ctx context.Context, seguroID uint) (string, error) {
	var (
		numero string
		err    error
	)
	for tentativa := 1; tentativa <= tentativasNumero; tentativa++ {
		numero, err = s.emitir(ctx, seguroID)
		if err == nil || !repository.IsUniqueViolation(err) {
			break
		}
		log.Warn().Uint("seguro_id", seguroID).Int("tentativa", tentativa).Msg("número de apólice em uso, tentando novamente")
	}
	if repository.IsUniqueViolation(err) {
		return "", apierror.Conflict("Número de apólice já existe.", err)
	}
	return numero, err
}

func (s *apoliceService) emitir(ctx context.Context, seguroID uint) (string, error) {
	var numero string
	err := runTx(ctx, s.apolices.DB(), func(tx *gorm.DB) error {
		seguro, err := s.seguros.FindByIDTx(ctx, tx, seguroID)
		if repository.IsNotFound(err) {
			return ErrSeguroNaoEncontrado
		}
		if err != nil {
			return fmt.Errorf("buscar seguro %d: %w", seguroID, err)
		}

		valor, err := ValorMensal(seguro.Tipo, seguro.ValorBase)
		if err != nil {
			return err
		}

		proximo, err := s.apolices.NextNumero(ctx, tx)
		if err != nil {
			return fmt.Errorf("próximo número: %w", err)
		}

		a := &model.Apolice{
			Numero:      proximo,
			SeguroID:    seguro.ID,
			Titular:     seguro.Titular,
			ValorMensal: valor,
			Status:      model.ApoliceAtiva,
		}
		if err := s.apolices.Create(ctx, tx, a); err != nil {
			return err
		}
		numero = proximo
		return nil
	})
	return numero, err
}

// ── Cancelar ─────────────────────────────────────────────────────────────────

// Cancelar returns false when the policy does not exist.
func (s *apoliceService) Cancelar(ctx context.Context, numero string) (bool, error) {
	ok := false
	err := runTx(ctx, s.apolices.DB(), func(tx *gorm.DB) error {
		a, err := s.apolices.FindByNumeroTx(ctx, tx, numero)
		if repository.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("buscar apólice %s: %w", numero, err)
		}
		if a.Status == model.ApoliceCancelada {
			return ErrApoliceJaCancelada
		}
		if err := s.apolices.Update(ctx, tx, a.ID, map[string]any{
			"status":       model.ApoliceCancelada,
			"cancelado_em": time.Now().UTC(),
		}); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// ── Editar ───────────────────────────────────────────────────────────────────

// Editar applies the given fields. Reactivating a cancelled policy is refused
// with false and ErrReativacaoProibida; nothing is written in that case.
func (s *apoliceService) Editar(ctx context.Context, numero string, req dto.EditarApoliceRequest) (bool, error) {
	if err := validation.Struct(req); err != nil {
		return false, err
	}

	campos := map[string]any{}
	if req.ValorMensal != nil {
		campos["valor_mensal"] = req.ValorMensal.Round(2)
	}
	if req.Titular != nil {
		campos["titular"] = strings.TrimSpace(*req.Titular)
	}

	ok := false
	err := runTx(ctx, s.apolices.DB(), func(tx *gorm.DB) error {
		a, err := s.apolices.FindByNumeroTx(ctx, tx, numero)
		if repository.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("buscar apólice %s: %w", numero, err)
		}

		if req.Status != nil && *req.Status != a.Status {
			if *req.Status == model.ApoliceAtiva {
				return ErrReativacaoProibida
			}
			campos["status"] = model.ApoliceCancelada
			campos["cancelado_em"] = time.Now().UTC()
		}
		if len(campos) == 0 {
			return nil
		}
		if err := s.apolices.Update(ctx, tx, a.ID, campos); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// ── Consultas ────────────────────────────────────────────────────────────────

func (s *apoliceService) ObterPorNumero(ctx context.Context, numero string) (*dto.ApoliceResponse, error) {
	a, err := s.apolices.FindByNumero(ctx, numero)
	if repository.IsNotFound(err) {
		return nil, ErrApoliceNaoEncontrada
	}
	if err != nil {
		return nil, err
	}
	resp := mapApolice(a)
	return &resp, nil
}

// Listar returns every policy, most recent first.
func (s *apoliceService) Listar(ctx context.Context) ([]dto.ApoliceResponse, error) {
	as, err := s.apolices.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApoliceResponse, len(as))
	for i := range as {
		out[i] = mapApolice(&as[i])
	}
	return out, nil
}

func mapApolice(a *model.Apolice) dto.ApoliceResponse {
	resp := dto.ApoliceResponse{
		Numero:      a.Numero,
		SeguroID:    a.SeguroID,
		Titular:     a.Titular,
		ValorMensal: a.ValorMensal,
		Status:      a.Status,
		CriadoEm:    a.CreatedAt,
		CanceladoEm: a.CanceladoEm,
	}
	if a.Seguro != nil {
		resp.Tipo = a.Seguro.Tipo
	}
	return resp
}
