package service

import (
	"context"
	"strconv"
	"time"

	"seguradora/internal/apierror"
	"seguradora/internal/dto"
	"seguradora/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Backoffice is the single entry point for mutating operations. Every call
// authorizes the actor, runs the engine, appends exactly one audit entry and
// records the operation metric. Reads go straight to the services.
type Backoffice struct {
	clientes    ClienteService
	seguros     SeguroService
	apolices    ApoliceService
	sinistros   SinistroService
	auth        AuthService
	autorizador Autorizador
	auditoria   AuditoriaService
	relatorios  RelatorioService
	metrics     *metrics.Metrics
}

type BackofficeDeps struct {
	Clientes    ClienteService
	Seguros     SeguroService
	Apolices    ApoliceService
	Sinistros   SinistroService
	Auth        AuthService
	Autorizador Autorizador
	Auditoria   AuditoriaService
	Relatorios  RelatorioService // optional; its cache is invalidated after writes
	Metrics     *metrics.Metrics // optional
}

func NewBackoffice(d BackofficeDeps) *Backoffice {
	return &Backoffice{
		clientes:    d.Clientes,
		seguros:     d.Seguros,
		apolices:    d.Apolices,
		sinistros:   d.Sinistros,
		auth:        d.Auth,
		autorizador: d.Autorizador,
		auditoria:   d.Auditoria,
		relatorios:  d.Relatorios,
		metrics:     d.Metrics,
	}
}

// Audited operation names.
const (
	OpCadastrarCliente  = "cadastrar_cliente"
	OpAtualizarContato  = "atualizar_contato_cliente"
	OpExcluirCliente    = "excluir_cliente"
	OpCriarSeguro       = "criar_seguro"
	OpAtualizarSeguro   = "atualizar_seguro"
	OpExcluirSeguro     = "excluir_seguro"
	OpEmitirApolice     = "emitir_apolice"
	OpCancelarApolice   = "cancelar_apolice"
	OpEditarApolice     = "editar_apolice"
	OpRegistrarSinistro = "registrar_sinistro"
	OpFecharSinistros   = "fechar_sinistros"
	OpEditarSinistro    = "editar_sinistro"
	OpCriarUsuario      = "criar_usuario"
	OpEditarUsuario     = "editar_usuario"
	OpExcluirUsuario    = "excluir_usuario"
	OpLogin             = "login"
)

const (
	detalheSemAlteracao = "Nenhum registro alterado."
	usuarioNaoInformado = "-"
)

type operacao struct {
	nome       string
	entidade   string
	entidadeID string
	exigeAdmin bool
}

// executar wraps fn with authorization, audit, metrics and logging. fn
// returns the affected entity id (when known only after running) and
// whether anything changed.
func (b *Backoffice) executar(ctx context.Context, ator dto.Sessao, op operacao, fn func() (string, bool, error)) error {
	start := time.Now()

	var (
		id  = op.entidadeID
		ok  bool
		err error
	)
	if err = b.autorizador.Autorizar(ator.Perfil, op.exigeAdmin); err == nil {
		var novoID string
		novoID, ok, err = fn()
		if novoID != "" {
			id = novoID
		}
	}
	sucesso := err == nil && ok

	entrada := dto.EntradaAuditoria{
		Usuario:    ator.Username,
		Operacao:   op.nome,
		Entidade:   op.entidade,
		EntidadeID: id,
		Sucesso:    sucesso,
	}
	if entrada.Usuario == "" {
		entrada.Usuario = usuarioNaoInformado
	}
	switch {
	case err != nil:
		entrada.Detalhe = apierror.UserMessage(err)
	case !ok:
		entrada.Detalhe = detalheSemAlteracao
	}
	if aerr := b.auditoria.Registrar(ctx, entrada); aerr != nil {
		log.Error().Err(aerr).Str("operacao", op.nome).Str("usuario", entrada.Usuario).Msg("falha ao registrar auditoria")
	}

	b.metrics.ObserveOperacao(op.nome, sucesso, start)

	var ev *zerolog.Event
	switch {
	case err == nil:
		ev = log.Info()
	case apierror.KindOf(err) == apierror.KindUnknown:
		ev = log.Error().Err(err)
	default:
		ev = log.Warn().Str("motivo", apierror.UserMessage(err))
	}
	ev.Str("operacao", op.nome).
		Str("usuario", entrada.Usuario).
		Str("entidade", op.entidade).
		Str("entidade_id", id).
		Bool("sucesso", sucesso).
		Dur("duracao", time.Since(start)).
		Msg("operação")

	if sucesso && op.entidade != EntidadeUsuario && b.relatorios != nil {
		b.relatorios.Invalidar(ctx)
	}
	return err
}

// entidadePorOperacao lets Rejeitar audit an operation by name alone.
var entidadePorOperacao = map[string]string{
	OpCadastrarCliente:  EntidadeCliente,
	OpAtualizarContato:  EntidadeCliente,
	OpExcluirCliente:    EntidadeCliente,
	OpCriarSeguro:       EntidadeSeguro,
	OpAtualizarSeguro:   EntidadeSeguro,
	OpExcluirSeguro:     EntidadeSeguro,
	OpEmitirApolice:     EntidadeApolice,
	OpCancelarApolice:   EntidadeApolice,
	OpEditarApolice:     EntidadeApolice,
	OpFecharSinistros:   EntidadeApolice,
	OpRegistrarSinistro: EntidadeSinistro,
	OpEditarSinistro:    EntidadeSinistro,
	OpCriarUsuario:      EntidadeUsuario,
	OpEditarUsuario:     EntidadeUsuario,
	OpExcluirUsuario:    EntidadeUsuario,
	OpLogin:             EntidadeUsuario,
}

// Rejeitar audits an attempt refused before the operation could run, such
// as an unreadable request body. It returns causa, or the permission error
// when the actor may not run op at all.
func (b *Backoffice) Rejeitar(ctx context.Context, ator dto.Sessao, op, entidadeID string, causa error) error {
	entidade, ok := entidadePorOperacao[op]
	if !ok {
		return causa
	}
	o := escrita(op, entidade, entidadeID)
	o.exigeAdmin = op != OpLogin
	return b.executar(ctx, ator, o, func() (string, bool, error) {
		return "", false, causa
	})
}

func escrita(nome, entidade, id string) operacao {
	return operacao{nome: nome, entidade: entidade, entidadeID: id, exigeAdmin: true}
}

func idStr(id uint) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatUint(uint64(id), 10)
}

// ── Clientes ─────────────────────────────────────────────────────────────────

func (b *Backoffice) CadastrarCliente(ctx context.Context, ator dto.Sessao, req dto.CadastrarClienteRequest) (*dto.ClienteResponse, error) {
	var out *dto.ClienteResponse
	err := b.executar(ctx, ator, escrita(OpCadastrarCliente, EntidadeCliente, ""), func() (string, bool, error) {
		c, err := b.clientes.Cadastrar(ctx, req)
		if err != nil {
			return "", false, err
		}
		out = c
		return idStr(c.ID), true, nil
	})
	return out, err
}

func (b *Backoffice) AtualizarContatoCliente(ctx context.Context, ator dto.Sessao, cpf string, req dto.AtualizarContatoRequest) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpAtualizarContato, EntidadeCliente, cpf), func() (string, bool, error) {
		var err error
		ok, err = b.clientes.AtualizarContato(ctx, cpf, req)
		return "", ok, err
	})
	return ok, err
}

func (b *Backoffice) ExcluirCliente(ctx context.Context, ator dto.Sessao, cpf string, forcar bool) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpExcluirCliente, EntidadeCliente, cpf), func() (string, bool, error) {
		var err error
		ok, err = b.clientes.Excluir(ctx, cpf, forcar)
		return "", ok, err
	})
	return ok, err
}

// ── Seguros ──────────────────────────────────────────────────────────────────

func (b *Backoffice) CriarSeguro(ctx context.Context, ator dto.Sessao, req dto.CriarSeguroRequest) (*dto.SeguroResponse, error) {
	var out *dto.SeguroResponse
	err := b.executar(ctx, ator, escrita(OpCriarSeguro, EntidadeSeguro, ""), func() (string, bool, error) {
		s, err := b.seguros.Criar(ctx, req)
		if err != nil {
			return "", false, err
		}
		out = s
		return idStr(s.ID), true, nil
	})
	return out, err
}

func (b *Backoffice) AtualizarSeguro(ctx context.Context, ator dto.Sessao, id uint, req dto.AtualizarSeguroRequest) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpAtualizarSeguro, EntidadeSeguro, idStr(id)), func() (string, bool, error) {
		var err error
		ok, err = b.seguros.Atualizar(ctx, id, req)
		return "", ok, err
	})
	return ok, err
}

func (b *Backoffice) ExcluirSeguro(ctx context.Context, ator dto.Sessao, id uint) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpExcluirSeguro, EntidadeSeguro, idStr(id)), func() (string, bool, error) {
		var err error
		ok, err = b.seguros.Excluir(ctx, id)
		return "", ok, err
	})
	return ok, err
}

// ── Apólices ─────────────────────────────────────────────────────────────────

func (b *Backoffice) EmitirApolice(ctx context.Context, ator dto.Sessao, seguroID uint) (string, error) {
	var numero string
	err := b.executar(ctx, ator, escrita(OpEmitirApolice, EntidadeApolice, idStr(seguroID)), func() (string, bool, error) {
		var err error
		numero, err = b.apolices.Emitir(ctx, seguroID)
		return numero, err == nil, err
	})
	return numero, err
}

func (b *Backoffice) CancelarApolice(ctx context.Context, ator dto.Sessao, numero string) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpCancelarApolice, EntidadeApolice, numero), func() (string, bool, error) {
		var err error
		ok, err = b.apolices.Cancelar(ctx, numero)
		return "", ok, err
	})
	return ok, err
}

func (b *Backoffice) EditarApolice(ctx context.Context, ator dto.Sessao, numero string, req dto.EditarApoliceRequest) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpEditarApolice, EntidadeApolice, numero), func() (string, bool, error) {
		var err error
		ok, err = b.apolices.Editar(ctx, numero, req)
		return "", ok, err
	})
	return ok, err
}

// ── Sinistros ────────────────────────────────────────────────────────────────

func (b *Backoffice) RegistrarSinistro(ctx context.Context, ator dto.Sessao, req dto.RegistrarSinistroRequest) (uint, error) {
	var id uint
	err := b.executar(ctx, ator, escrita(OpRegistrarSinistro, EntidadeSinistro, ""), func() (string, bool, error) {
		var err error
		id, err = b.sinistros.Registrar(ctx, req)
		return idStr(id), err == nil, err
	})
	return id, err
}

// FecharSinistros closes every open claim of the policy.
func (b *Backoffice) FecharSinistros(ctx context.Context, ator dto.Sessao, numeroApolice string) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpFecharSinistros, EntidadeApolice, numeroApolice), func() (string, bool, error) {
		var err error
		ok, err = b.sinistros.Fechar(ctx, numeroApolice)
		return "", ok, err
	})
	return ok, err
}

func (b *Backoffice) EditarSinistro(ctx context.Context, ator dto.Sessao, id uint, req dto.EditarSinistroRequest) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpEditarSinistro, EntidadeSinistro, idStr(id)), func() (string, bool, error) {
		var err error
		ok, err = b.sinistros.Editar(ctx, id, req)
		return "", ok, err
	})
	return ok, err
}

// ── Usuários ─────────────────────────────────────────────────────────────────

func (b *Backoffice) CriarUsuario(ctx context.Context, ator dto.Sessao, req dto.CriarUsuarioRequest) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpCriarUsuario, EntidadeUsuario, req.Username), func() (string, bool, error) {
		var err error
		ok, err = b.auth.CriarUsuario(ctx, req)
		return "", ok, err
	})
	return ok, err
}

func (b *Backoffice) EditarUsuario(ctx context.Context, ator dto.Sessao, username string, req dto.EditarUsuarioRequest) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpEditarUsuario, EntidadeUsuario, username), func() (string, bool, error) {
		var err error
		ok, err = b.auth.EditarUsuario(ctx, username, req)
		return "", ok, err
	})
	return ok, err
}

func (b *Backoffice) ExcluirUsuario(ctx context.Context, ator dto.Sessao, username string) (bool, error) {
	var ok bool
	err := b.executar(ctx, ator, escrita(OpExcluirUsuario, EntidadeUsuario, username), func() (string, bool, error) {
		var err error
		ok, err = b.auth.ExcluirUsuario(ctx, username)
		return "", ok, err
	})
	return ok, err
}

// ── Autenticação ─────────────────────────────────────────────────────────────

// Autenticar checks credentials and audits the attempt under the supplied
// username.
func (b *Backoffice) Autenticar(ctx context.Context, username, senha string) (*dto.Sessao, error) {
	var sessao *dto.Sessao
	op := operacao{nome: OpLogin, entidade: EntidadeUsuario, entidadeID: username}
	err := b.executar(ctx, dto.Sessao{Username: username}, op, func() (string, bool, error) {
		var err error
		sessao, err = b.auth.Autenticar(ctx, username, senha)
		return "", err == nil, err
	})
	return sessao, err
}

// Login is Autenticar plus a signed access token for the HTTP API.
func (b *Backoffice) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var resp *dto.LoginResponse
	op := operacao{nome: OpLogin, entidade: EntidadeUsuario, entidadeID: req.Username}
	err := b.executar(ctx, dto.Sessao{Username: req.Username}, op, func() (string, bool, error) {
		var err error
		resp, err = b.auth.Login(ctx, req)
		return "", err == nil, err
	})
	return resp, err
}
