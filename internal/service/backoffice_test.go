package service

import (
	"context"
	"testing"

	"seguradora/internal/apierror"
	"seguradora/internal/dto"
	"seguradora/internal/metrics"
	"seguradora/internal/model"
	"seguradora/internal/repository"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = dto.Sessao{Username: "admin", Perfil: model.PerfilAdmin}
	comum = dto.Sessao{Username: "maria", Perfil: model.PerfilComum}
)

type spyRelatorios struct {
	RelatorioService
	invalidacoes int
}

func (s *spyRelatorios) Invalidar(context.Context) { s.invalidacoes++ }

func newTestBackoffice(t *testing.T, f *fixture) (*Backoffice, *metrics.Metrics, *spyRelatorios) {
	t.Helper()
	autorizador, err := NewAutorizador()
	require.NoError(t, err)
	m := metrics.New()
	spy := &spyRelatorios{}
	b := NewBackoffice(BackofficeDeps{
		Clientes:    f.clientes,
		Seguros:     f.seguros,
		Apolices:    f.apolices,
		Sinistros:   f.sinistros,
		Auth:        f.auth,
		Autorizador: autorizador,
		Auditoria:   f.auditoria,
		Relatorios:  spy,
		Metrics:     m,
	})
	return b, m, spy
}

func (f *fixture) ultimaAuditoria(t *testing.T) model.Auditoria {
	t.Helper()
	rows, err := f.auditoriaRepo.List(context.Background(), dto.FiltroAuditoria{Limit: 1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestBackoffice_FluxoCompleto(t *testing.T) {
	f := newFixture(t)
	b, m, spy := newTestBackoffice(t, f)
	ctx := context.Background()

	cli, err := b.CadastrarCliente(ctx, admin, dto.CadastrarClienteRequest{
		Nome: "Ana", CPF: cpfAna, DataNascimento: "01/02/1990",
	})
	require.NoError(t, err)
	assert.Equal(t, "52998224725", cli.CPF)

	seg, err := b.CriarSeguro(ctx, admin, dto.CriarSeguroRequest{
		Tipo: model.TipoAutomovel, ClienteCPF: ptr(cpfAna), ValorBase: decimal.NewFromInt(50000),
		Modelo: ptr("Onix"), Ano: ptr(2020), Placa: ptr("ABC1D23"),
	})
	require.NoError(t, err)

	numero, err := b.EmitirApolice(ctx, admin, seg.ID)
	require.NoError(t, err)
	assert.Equal(t, "00001", numero)

	a := f.ultimaAuditoria(t)
	assert.Equal(t, OpEmitirApolice, a.Operacao)
	assert.Equal(t, "admin", a.Usuario)
	assert.True(t, a.Sucesso)
	require.NotNil(t, a.EntidadeID)
	assert.Equal(t, "00001", *a.EntidadeID)

	id, err := b.RegistrarSinistro(ctx, admin, dto.RegistrarSinistroRequest{
		NumeroApolice: numero, Descricao: "Colisão", DataOcorrencia: "10/03/2024",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	ok, err := b.FecharSinistros(ctx, admin, numero)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.CancelarApolice(ctx, admin, numero)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := f.auditoriaRepo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 6, n, "one audit row per operation")
	assert.Equal(t, 6, spy.invalidacoes)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operacoes.WithLabelValues(OpEmitirApolice, "true")))
}

func TestBackoffice_PermissaoNegadaAuditada(t *testing.T) {
	f := newFixture(t)
	b, m, spy := newTestBackoffice(t, f)
	ctx := context.Background()

	_, err := b.CadastrarCliente(ctx, comum, dto.CadastrarClienteRequest{
		Nome: "Ana", CPF: cpfAna, DataNascimento: "01/02/1990",
	})
	assert.True(t, apierror.Is(err, apierror.KindPermission))
	assert.Zero(t, f.count(t, &model.Cliente{}))

	a := f.ultimaAuditoria(t)
	assert.Equal(t, "maria", a.Usuario)
	assert.Equal(t, OpCadastrarCliente, a.Operacao)
	assert.False(t, a.Sucesso)
	require.NotNil(t, a.Detalhe)
	assert.Equal(t, "Operação não permitida para o seu perfil.", *a.Detalhe)

	assert.Zero(t, spy.invalidacoes)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operacoes.WithLabelValues(OpCadastrarCliente, "false")))
}

func TestBackoffice_FalhasAuditadas(t *testing.T) {
	f := newFixture(t)
	b, _, _ := newTestBackoffice(t, f)
	ctx := context.Background()

	_, err := b.RegistrarSinistro(ctx, admin, dto.RegistrarSinistroRequest{
		NumeroApolice: "00001", Descricao: "Granizo", DataOcorrencia: "32/01/2024",
	})
	assert.True(t, apierror.Is(err, apierror.KindValidation))
	a := f.ultimaAuditoria(t)
	assert.False(t, a.Sucesso)
	assert.Equal(t, OpRegistrarSinistro, a.Operacao)

	ok, err := b.CancelarApolice(ctx, admin, "99999")
	assert.NoError(t, err)
	assert.False(t, ok)
	a = f.ultimaAuditoria(t)
	assert.False(t, a.Sucesso)
	require.NotNil(t, a.Detalhe)
	assert.Equal(t, detalheSemAlteracao, *a.Detalhe)

	n, err := f.auditoriaRepo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestBackoffice_EmissaoAuditaSeguroAlvo(t *testing.T) {
	f := newFixture(t)
	b, _, _ := newTestBackoffice(t, f)
	ctx := context.Background()

	_, err := b.EmitirApolice(ctx, admin, 42)
	assert.ErrorIs(t, err, ErrSeguroNaoEncontrado)
	a := f.ultimaAuditoria(t)
	assert.False(t, a.Sucesso)
	require.NotNil(t, a.EntidadeID)
	assert.Equal(t, "42", *a.EntidadeID)

	f.cadastrarAna(t)
	seg := f.criarAutomovel(t, cpfAna, "50000")
	numero, err := b.EmitirApolice(ctx, admin, seg.ID)
	require.NoError(t, err)
	a = f.ultimaAuditoria(t)
	assert.True(t, a.Sucesso)
	require.NotNil(t, a.EntidadeID)
	assert.Equal(t, numero, *a.EntidadeID)
}

func TestBackoffice_Rejeitar(t *testing.T) {
	f := newFixture(t)
	b, m, spy := newTestBackoffice(t, f)
	ctx := context.Background()
	causa := apierror.Invalid("corpo", "JSON inválido.")

	err := b.Rejeitar(ctx, admin, OpEditarSinistro, "7", causa)
	assert.ErrorIs(t, err, causa)
	a := f.ultimaAuditoria(t)
	assert.Equal(t, OpEditarSinistro, a.Operacao)
	assert.Equal(t, EntidadeSinistro, a.Entidade)
	assert.False(t, a.Sucesso)
	require.NotNil(t, a.EntidadeID)
	assert.Equal(t, "7", *a.EntidadeID)
	require.NotNil(t, a.Detalhe)
	assert.Equal(t, "JSON inválido.", *a.Detalhe)
	assert.Zero(t, spy.invalidacoes)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operacoes.WithLabelValues(OpEditarSinistro, "false")))

	// A profile without write access gets the permission error instead.
	err = b.Rejeitar(ctx, comum, OpExcluirSeguro, "", causa)
	assert.True(t, apierror.Is(err, apierror.KindPermission))

	// Login needs no write grant.
	err = b.Rejeitar(ctx, dto.Sessao{}, OpLogin, "", causa)
	assert.ErrorIs(t, err, causa)
	a = f.ultimaAuditoria(t)
	assert.Equal(t, OpLogin, a.Operacao)
	assert.Equal(t, usuarioNaoInformado, a.Usuario)

	// Unknown operations are not audited.
	err = b.Rejeitar(ctx, admin, "desconhecida", "", causa)
	assert.ErrorIs(t, err, causa)
	n, err := f.auditoriaRepo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestBackoffice_Login(t *testing.T) {
	f := newFixture(t)
	b, _, spy := newTestBackoffice(t, f)
	ctx := context.Background()

	ok, err := b.CriarUsuario(ctx, admin, dto.CriarUsuarioRequest{Username: "maria", Senha: "1234", Perfil: model.PerfilComum})
	require.NoError(t, err)
	require.True(t, ok)

	sessao, err := b.Autenticar(ctx, "maria", "1234")
	require.NoError(t, err)
	assert.Equal(t, model.PerfilComum, sessao.Perfil)
	a := f.ultimaAuditoria(t)
	assert.Equal(t, OpLogin, a.Operacao)
	assert.True(t, a.Sucesso)

	_, err = b.Login(ctx, dto.LoginRequest{Username: "maria", Senha: "errada"})
	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)
	a = f.ultimaAuditoria(t)
	assert.Equal(t, OpLogin, a.Operacao)
	assert.Equal(t, "maria", a.Usuario)
	assert.False(t, a.Sucesso)

	_, err = b.Autenticar(ctx, "", "")
	assert.ErrorIs(t, err, ErrCredenciaisVazias)
	assert.Equal(t, usuarioNaoInformado, f.ultimaAuditoria(t).Usuario)

	// A "comum" user cannot manage users.
	_, err = b.ExcluirUsuario(ctx, comum, "maria")
	assert.True(t, apierror.Is(err, apierror.KindPermission))
	assert.Zero(t, spy.invalidacoes, "user operations do not touch report figures")
}

// failingAuditoriaRepo makes every append fail.
type failingAuditoriaRepo struct {
	repository.AuditoriaRepository
}

func (failingAuditoriaRepo) Append(context.Context, *model.Auditoria) error {
	return errDiscoFalhou
}

func TestBackoffice_FalhaDeAuditoriaNaoAfetaResultado(t *testing.T) {
	f := newFixture(t)
	f.auditoriaRepo = failingAuditoriaRepo{f.auditoriaRepo}
	f.wire()
	b, _, _ := newTestBackoffice(t, f)

	cli, err := b.CadastrarCliente(context.Background(), admin, dto.CadastrarClienteRequest{
		Nome: "Ana", CPF: cpfAna, DataNascimento: "01/02/1990",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", cli.Nome)
}
