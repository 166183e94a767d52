package service

import (
	"context"
	"testing"

	"seguradora/internal/config"
	"seguradora/internal/dto"
	"seguradora/internal/infra"
	"seguradora/internal/model"
	"seguradora/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	db *gorm.DB

	clienteRepo   repository.ClienteRepository
	seguroRepo    repository.SeguroRepository
	apoliceRepo   repository.ApoliceRepository
	sinistroRepo  repository.SinistroRepository
	usuarioRepo   repository.UsuarioRepository
	auditoriaRepo repository.AuditoriaRepository

	clientes  ClienteService
	seguros   SeguroService
	apolices  ApoliceService
	sinistros SinistroService
	auth      AuthService
	auditoria AuditoriaService
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "segredo-de-teste-com-32-caracteres!",
		JWTExpirationHours: 1,
		BcryptCost:         4,
		TopClientsLimit:    5,
	}
}

// newTestDB opens a private in-memory sqlite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.NewDatabase(infra.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db, ""))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{
		db:            db,
		clienteRepo:   repository.NewClienteRepository(db),
		seguroRepo:    repository.NewSeguroRepository(db),
		apoliceRepo:   repository.NewApoliceRepository(db),
		sinistroRepo:  repository.NewSinistroRepository(db),
		usuarioRepo:   repository.NewUsuarioRepository(db),
		auditoriaRepo: repository.NewAuditoriaRepository(db),
	}
	f.wire()
	return f
}

// wire builds the services from the fixture's current repositories so tests
// can swap one for a failing decorator.
func (f *fixture) wire() {
	f.clientes = NewClienteService(f.clienteRepo, f.seguroRepo, f.apoliceRepo, f.sinistroRepo, f.usuarioRepo)
	f.seguros = NewSeguroService(f.seguroRepo, f.clienteRepo, f.apoliceRepo, f.sinistroRepo)
	f.apolices = NewApoliceService(f.apoliceRepo, f.seguroRepo)
	f.sinistros = NewSinistroService(f.sinistroRepo, f.apoliceRepo)
	f.auth = NewAuthService(f.usuarioRepo, f.clienteRepo, testConfig())
	f.auditoria = NewAuditoriaService(f.auditoriaRepo)
}

func (f *fixture) count(t *testing.T, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(m).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T { return &v }

// ── Builders ─────────────────────────────────────────────────────────────────

const cpfAna = "529.982.247-25"

func (f *fixture) cadastrarAna(t *testing.T) *dto.ClienteResponse {
	t.Helper()
	c, err := f.clientes.Cadastrar(context.Background(), dto.CadastrarClienteRequest{
		Nome:           "Ana",
		CPF:            cpfAna,
		DataNascimento: "01/02/1990",
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) criarAutomovel(t *testing.T, cpf string, base string) *dto.SeguroResponse {
	t.Helper()
	s, err := f.seguros.Criar(context.Background(), dto.CriarSeguroRequest{
		Tipo:       model.TipoAutomovel,
		ClienteCPF: ptr(cpf),
		ValorBase:  decimal.RequireFromString(base),
		Modelo:     ptr("Onix"),
		Ano:        ptr(2020),
		Placa:      ptr("abc1d23"),
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) emitir(t *testing.T, seguroID uint) string {
	t.Helper()
	numero, err := f.apolices.Emitir(context.Background(), seguroID)
	require.NoError(t, err)
	return numero
}

func (f *fixture) registrarSinistro(t *testing.T, numero string) uint {
	t.Helper()
	id, err := f.sinistros.Registrar(context.Background(), dto.RegistrarSinistroRequest{
		NumeroApolice:  numero,
		Descricao:      "Colisão traseira",
		DataOcorrencia: "10/03/2024",
	})
	require.NoError(t, err)
	return id
}
