package service

import (
	"context"
	"errors"
	"testing"

	"seguradora/internal/apierror"
	"seguradora/internal/dto"
	"seguradora/internal/model"
	"seguradora/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingApoliceRepo breaks policy deletion halfway through a cascade.
type failingApoliceRepo struct {
	repository.ApoliceRepository
}

var errDiscoFalhou = errors.New("disco cheio")

func (failingApoliceRepo) Delete(context.Context, *gorm.DB, []uint) error {
	return errDiscoFalhou
}

type totais struct {
	clientes, seguros, apolices, sinistros int64
}

func (f *fixture) totais(t *testing.T) totais {
	t.Helper()
	return totais{
		clientes:  f.count(t, &model.Cliente{}),
		seguros:   f.count(t, &model.Seguro{}),
		apolices:  f.count(t, &model.Apolice{}),
		sinistros: f.count(t, &model.Sinistro{}),
	}
}

// anaComApolice builds Ana with one car contract, one policy and one claim.
func anaComApolice(t *testing.T, f *fixture) (seguroID uint, numero string) {
	t.Helper()
	f.cadastrarAna(t)
	seg := f.criarAutomovel(t, cpfAna, "50000")
	numero = f.emitir(t, seg.ID)
	f.registrarSinistro(t, numero)
	return seg.ID, numero
}

func TestCascadePolicy(t *testing.T) {
	assert.Equal(t, ForceableCascade, politicasExclusao[EntidadeCliente])
	assert.Equal(t, StrictBlock, politicasExclusao[EntidadeSeguro])
	assert.Equal(t, "forceable_cascade", ForceableCascade.String())
	assert.Equal(t, "strict_block", StrictBlock.String())
}

func TestExcluirCliente_BloqueadoSemForcar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anaComApolice(t, f)
	antes := f.totais(t)

	ok, err := f.clientes.Excluir(ctx, cpfAna, false)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrClienteComVinculos)
	assert.Equal(t, "Cliente possui seguros/apólices vinculados; use a exclusão forçada.", apierror.UserMessage(err))
	assert.Equal(t, antes, f.totais(t))
}

func TestExcluirCliente_Forcado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anaComApolice(t, f)

	ok, err := f.clientes.Excluir(ctx, "52998224725", true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, totais{}, f.totais(t))
}

func TestExcluirCliente_SomenteSeguros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.cadastrarAna(t)
	f.criarAutomovel(t, cpfAna, "50000")

	ok, err := f.clientes.Excluir(ctx, cpfAna, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, f.count(t, &model.Seguro{}), "sem seguro órfão")
	assert.Zero(t, f.count(t, &model.Cliente{}))
}

func TestExcluirCliente_SeguroLegadoPorTitular(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.cadastrarAna(t)
	// Legacy contract: no cliente_id, matched only by the holder's name.
	legado := &model.Seguro{
		Tipo:           model.TipoResidencial,
		Titular:        "Ana",
		ValorBase:      decimal.NewFromInt(200000),
		EnderecoImovel: ptr("Rua A, 1"),
	}
	require.NoError(t, f.db.Create(legado).Error)
	f.emitir(t, legado.ID)

	ok, err := f.clientes.Excluir(ctx, cpfAna, false)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrClienteComVinculos)

	ok, err = f.clientes.Excluir(ctx, cpfAna, true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, f.count(t, &model.Seguro{}))
	assert.Zero(t, f.count(t, &model.Apolice{}))
}

func TestExcluirCliente_Inexistente(t *testing.T) {
	f := newFixture(t)

	ok, err := f.clientes.Excluir(context.Background(), cpfAna, true)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestExcluirCliente_FalhaNoMeioDesfazTudo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anaComApolice(t, f)
	antes := f.totais(t)

	f.apoliceRepo = failingApoliceRepo{f.apoliceRepo}
	f.wire()

	ok, err := f.clientes.Excluir(ctx, cpfAna, true)
	assert.False(t, ok)
	assert.ErrorIs(t, err, errDiscoFalhou)
	assert.Equal(t, antes, f.totais(t), "claims deleted before the failure must be rolled back")
}

func TestExcluirCliente_RemoveAcessosDoCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anaComApolice(t, f)
	criarUsuario(t, f, dto.CriarUsuarioRequest{
		Username: "ana", Senha: "1234", Perfil: model.PerfilCliente, ClienteCPF: ptr(cpfAna),
	})
	criarUsuario(t, f, dto.CriarUsuarioRequest{Username: "joao", Senha: "1234", Perfil: model.PerfilComum})

	// Blocked deletion keeps the login.
	_, err := f.clientes.Excluir(ctx, cpfAna, false)
	require.ErrorIs(t, err, ErrClienteComVinculos)
	_, err = f.auth.Autenticar(ctx, "ana", "1234")
	require.NoError(t, err)

	ok, err := f.clientes.Excluir(ctx, cpfAna, true)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.usuarioRepo.FindByUsername(ctx, "ana")
	assert.True(t, repository.IsNotFound(err))
	_, err = f.auth.Autenticar(ctx, "ana", "1234")
	assert.ErrorIs(t, err, ErrCredenciaisInvalidas)

	_, err = f.auth.Autenticar(ctx, "joao", "1234")
	assert.NoError(t, err, "other profiles are untouched")
}

func TestExcluirCliente_FalhaNoMeioPreservaAcessos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anaComApolice(t, f)
	criarUsuario(t, f, dto.CriarUsuarioRequest{
		Username: "ana", Senha: "1234", Perfil: model.PerfilCliente, ClienteCPF: ptr(cpfAna),
	})

	f.apoliceRepo = failingApoliceRepo{f.apoliceRepo}
	f.wire()

	_, err := f.clientes.Excluir(ctx, cpfAna, true)
	require.ErrorIs(t, err, errDiscoFalhou)
	_, err = f.usuarioRepo.FindByUsername(ctx, "ana")
	assert.NoError(t, err)
}

func TestExcluirSeguro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seguroID, _ := anaComApolice(t, f)
	antes := f.totais(t)

	ok, err := f.seguros.Excluir(ctx, seguroID)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrSeguroComApolices)
	assert.Equal(t, antes, f.totais(t))

	livre := f.criarAutomovel(t, cpfAna, "30000")
	ok, err = f.seguros.Excluir(ctx, livre.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.seguros.Excluir(ctx, 999)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestAtualizarSeguro_NaoRecalculaPremio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seguroID, numero := anaComApolice(t, f)

	novo := decimal.NewFromInt(80000)
	ok, err := f.seguros.Atualizar(ctx, seguroID, dto.AtualizarSeguroRequest{ValorBase: &novo})
	require.NoError(t, err)
	assert.True(t, ok)

	a, err := f.apolices.ObterPorNumero(ctx, numero)
	require.NoError(t, err)
	assert.True(t, a.ValorMensal.Equal(decimal.NewFromInt(1500)))

	_, err = f.seguros.Atualizar(ctx, seguroID, dto.AtualizarSeguroRequest{EnderecoImovel: ptr("Rua B")})
	assert.True(t, apierror.Is(err, apierror.KindValidation))
}
