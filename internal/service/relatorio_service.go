package service

import (
	"context"
	"strconv"
	"time"

	"seguradora/internal/apierror"
	"seguradora/internal/dto"
	"seguradora/internal/export"
	"seguradora/internal/metrics"
	"seguradora/internal/repository"
	"seguradora/internal/validation"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ReportCache is the optional snapshot store in front of the aggregate
// queries. infra.RedisCache implements it.
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// Exportable report names.
const (
	RelatorioReceitaMensal    = "receita-mensal"
	RelatorioTopClientes      = "top-clientes"
	RelatorioSinistrosStatus  = "sinistros-status"
	RelatorioSinistrosPeriodo = "sinistros-periodo"
)

const defaultTopClientes = 5

type RelatorioService interface {
	ReceitaMensal(ctx context.Context) ([]dto.ReceitaMensalItem, error)
	TopClientes(ctx context.Context, limit int) ([]dto.TopClienteItem, error)
	SinistrosPorStatus(ctx context.Context) ([]dto.SinistrosStatusItem, error)
	SinistrosPorPeriodo(ctx context.Context, filtro dto.PeriodoFilter) ([]dto.SinistrosPeriodoItem, error)
	Resumo(ctx context.Context) (*dto.ResumoRelatorios, error)
	// Exportar writes one report to a file. filtro is only read by the
	// period report.
	Exportar(ctx context.Context, nome, formato string, filtro dto.PeriodoFilter) (*dto.ExportResponse, error)
	// Invalidar drops cached snapshots after a write changed the figures.
	Invalidar(ctx context.Context)
}

type RelatorioOptions struct {
	Cache       ReportCache
	CacheTTL    time.Duration
	ExportDir   string
	TopClientes int
	Metrics     *metrics.Metrics
}

type relatorioService struct {
	repo repository.RelatorioRepository
	opts RelatorioOptions
}

func NewRelatorioService(repo repository.RelatorioRepository, opts RelatorioOptions) RelatorioService {
	if opts.TopClientes <= 0 {
		opts.TopClientes = defaultTopClientes
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "exports"
	}
	return &relatorioService{repo: repo, opts: opts}
}

// cached serves key from the cache when present and fills it on a miss.
// Cache errors never fail the report.
func cached[T any](ctx context.Context, s *relatorioService, key string, load func() (T, error)) (T, error) {
	if s.opts.Cache == nil || s.opts.CacheTTL <= 0 {
		return load()
	}
	var v T
	hit, err := s.opts.Cache.Get(ctx, key, &v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache de relatórios indisponível")
	}
	if hit {
		return v, nil
	}
	v, err = load()
	if err != nil {
		return v, err
	}
	if err := s.opts.Cache.Set(ctx, key, v, s.opts.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("falha ao gravar cache de relatórios")
	}
	return v, nil
}

func (s *relatorioService) ReceitaMensal(ctx context.Context) ([]dto.ReceitaMensalItem, error) {
	return cached(ctx, s, RelatorioReceitaMensal, func() ([]dto.ReceitaMensalItem, error) {
		return s.repo.ReceitaMensal(ctx)
	})
}

func (s *relatorioService) TopClientes(ctx context.Context, limit int) ([]dto.TopClienteItem, error) {
	if limit <= 0 {
		limit = s.opts.TopClientes
	}
	key := RelatorioTopClientes + ":" + strconv.Itoa(limit)
	return cached(ctx, s, key, func() ([]dto.TopClienteItem, error) {
		return s.repo.TopClientes(ctx, limit)
	})
}

func (s *relatorioService) SinistrosPorStatus(ctx context.Context) ([]dto.SinistrosStatusItem, error) {
	return cached(ctx, s, RelatorioSinistrosStatus, func() ([]dto.SinistrosStatusItem, error) {
		return s.repo.SinistrosPorStatus(ctx)
	})
}

func (s *relatorioService) SinistrosPorPeriodo(ctx context.Context, filtro dto.PeriodoFilter) ([]dto.SinistrosPeriodoItem, error) {
	if err := validation.Struct(filtro); err != nil {
		return nil, err
	}
	if filtro.De > filtro.Ate {
		return nil, apierror.Invalid("de", "O mês inicial deve ser anterior ao final.")
	}
	key := RelatorioSinistrosPeriodo + ":" + filtro.De + ":" + filtro.Ate
	return cached(ctx, s, key, func() ([]dto.SinistrosPeriodoItem, error) {
		return s.repo.SinistrosPorPeriodo(ctx, filtro.De, filtro.Ate)
	})
}

// Resumo runs the dashboard reports concurrently.
func (s *relatorioService) Resumo(ctx context.Context) (*dto.ResumoRelatorios, error) {
	var out dto.ResumoRelatorios
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.ReceitaMensal, err = s.ReceitaMensal(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.TopClientes, err = s.TopClientes(gctx, 0)
		return err
	})
	g.Go(func() (err error) {
		out.SinistrosPorStatus, err = s.SinistrosPorStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// ── Exportar ─────────────────────────────────────────────────────────────────

func (s *relatorioService) Exportar(ctx context.Context, nome, formato string, filtro dto.PeriodoFilter) (*dto.ExportResponse, error) {
	if !export.FormatoValido(formato) {
		return nil, apierror.Invalid("formato", "Formato de exportação inválido. Use csv, json, xlsx ou pdf.")
	}
	tabela, err := s.tabela(ctx, nome, filtro)
	if err != nil {
		return nil, err
	}
	arquivo, err := export.Salvar(s.opts.ExportDir, nome, formato, tabela)
	if err != nil {
		return nil, err
	}
	s.opts.Metrics.IncrementExportacao(formato)
	log.Info().Str("relatorio", nome).Str("arquivo", arquivo).Msg("relatório exportado")
	return &dto.ExportResponse{Arquivo: arquivo}, nil
}

func (s *relatorioService) tabela(ctx context.Context, nome string, filtro dto.PeriodoFilter) (export.Tabela, error) {
	switch nome {
	case RelatorioReceitaMensal:
		itens, err := s.ReceitaMensal(ctx)
		if err != nil {
			return export.Tabela{}, err
		}
		t := export.Tabela{Titulo: "Receita mensal prevista", Colunas: []string{"mes", "total"}}
		for _, i := range itens {
			t.Linhas = append(t.Linhas, []string{i.Mes, i.Total.StringFixed(2)})
		}
		return t, nil
	case RelatorioTopClientes:
		itens, err := s.TopClientes(ctx, 0)
		if err != nil {
			return export.Tabela{}, err
		}
		t := export.Tabela{Titulo: "Clientes com maior valor segurado", Colunas: []string{"titular", "valor_segurado"}}
		for _, i := range itens {
			t.Linhas = append(t.Linhas, []string{i.Titular, i.ValorSegurado.StringFixed(2)})
		}
		return t, nil
	case RelatorioSinistrosStatus:
		itens, err := s.SinistrosPorStatus(ctx)
		if err != nil {
			return export.Tabela{}, err
		}
		t := export.Tabela{Titulo: "Sinistros por status", Colunas: []string{"status", "quantidade"}}
		for _, i := range itens {
			t.Linhas = append(t.Linhas, []string{i.Status, strconv.FormatInt(i.Quantidade, 10)})
		}
		return t, nil
	case RelatorioSinistrosPeriodo:
		itens, err := s.SinistrosPorPeriodo(ctx, filtro)
		if err != nil {
			return export.Tabela{}, err
		}
		t := export.Tabela{
			Titulo:  "Sinistros por período (" + filtro.De + " a " + filtro.Ate + ")",
			Colunas: []string{"mes", "quantidade"},
		}
		for _, i := range itens {
			t.Linhas = append(t.Linhas, []string{i.Mes, strconv.FormatInt(i.Quantidade, 10)})
		}
		return t, nil
	}
	return export.Tabela{}, apierror.NotFound("Relatório não encontrado.")
}

func (s *relatorioService) Invalidar(ctx context.Context) {
	if s.opts.Cache == nil {
		return
	}
	if err := s.opts.Cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("falha ao invalidar cache de relatórios")
	}
}
